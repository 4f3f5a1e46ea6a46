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

const ModuleName = "vaultbank"

var (
	PausedKey              = []byte("vaultbank/paused")
	VaultPrefix            = []byte("vaultbank/vault/")
	ShareBalancePrefix     = []byte("vaultbank/share_balance/")
	TierPrefix             = []byte("vaultbank/tier/")
	SupportedAssetPrefix   = []byte("vaultbank/supported_asset/")
	PositionSequencePrefix = []byte("vaultbank/position_sequence/")
	PositionPrefix         = []byte("vaultbank/position/")
	ReferralCodePrefix     = []byte("vaultbank/referral_code/")
	StatsPrefix            = []byte("vaultbank/stats/")
)
