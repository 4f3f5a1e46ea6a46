// SPDX-License-Identifier: BUSL-1.1
//
// Copyright (C) 2025, NASD Inc. All rights reserved.
// Use of this software is governed by the Business Source License included
// in the LICENSE file of this repository and at www.mariadb.com/bsl11.
//
// ANY USE OF THE LICENSED WORK IN VIOLATION OF THIS LICENSE WILL AUTOMATICALLY
// TERMINATE YOUR RIGHTS UNDER THIS LICENSE FOR THE CURRENT AND ALL OTHER
// VERSIONS OF THE LICENSED WORK.
//
// THIS LICENSE DOES NOT GRANT YOU ANY RIGHT IN ANY TRADEMARK OR LOGO OF
// LICENSOR OR ITS AFFILIATES (PROVIDED THAT YOU MAY USE A TRADEMARK OR LOGO OF
// LICENSOR AS EXPRESSLY REQUIRED BY THIS LICENSE).
//
// TO THE EXTENT PERMITTED BY APPLICABLE LAW, THE LICENSED WORK IS PROVIDED ON
// AN "AS IS" BASIS. LICENSOR HEREBY DISCLAIMS ALL WARRANTIES AND CONDITIONS,
// EXPRESS OR IMPLIED, INCLUDING (WITHOUT LIMITATION) WARRANTIES OF
// MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE, NON-INFRINGEMENT, AND
// TITLE.

package types

import "cosmossdk.io/math"

// Position is one user's deposit record. It is created on deposit, shrunk by
// partial withdrawals and left behind as a zero-share record after a full
// withdrawal so the audit trail survives. Shares only ever decrease after
// creation.
type Position struct {
	Owner           string   `json:"owner"`
	Asset           string   `json:"asset"`
	PrincipalAmount math.Int `json:"principal_amount"`
	Shares          math.Int `json:"shares"`
	TierIndex       uint32   `json:"tier_index"`
	DepositedAt     int64    `json:"deposited_at"`
	LockEndsAt      int64    `json:"lock_ends_at"`
	Referrer        string   `json:"referrer,omitempty"`
}

// IsOpen reports whether the position still holds shares.
func (p Position) IsOpen() bool {
	return !p.Shares.IsNil() && p.Shares.IsPositive()
}
