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

var (
	// DeadShares is the fixed share amount minted to DeadShareAddress on the
	// first deposit into a vault. Withholding it from the depositor makes the
	// classic first-depositor price-manipulation attack unprofitable: the
	// attacker must sacrifice the dead-share value to inflate the share price.
	DeadShares = math.NewInt(1_000)

	// MinFirstDeposit is the smallest amount accepted as the opening deposit
	// of a vault. It is a multiple of DeadShares so the mitigation has teeth.
	MinFirstDeposit = math.NewInt(10_000)

	// MinDeposit is the smallest amount the orchestrator accepts for any
	// deposit.
	MinDeposit = math.NewInt(100)
)

// Vault is the per-asset pool record. Share price is TotalAssets/TotalShares.
type Vault struct {
	TotalAssets math.Int `json:"total_assets"`
	TotalShares math.Int `json:"total_shares"`
}

// VaultStats carries per-asset operational counters maintained by the
// orchestrator alongside the ledger itself.
type VaultStats struct {
	Deposits               uint64   `json:"deposits"`
	Withdrawals            uint64   `json:"withdrawals"`
	OpenPositions          uint64   `json:"open_positions"`
	PenaltiesRedistributed math.Int `json:"penalties_redistributed"`
}
