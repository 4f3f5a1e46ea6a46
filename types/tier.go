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

import "cosmossdk.io/errors"

const (
	// BasisPointsDenom is the denominator for all rate figures; 10000 = 100%.
	BasisPointsDenom int64 = 10_000

	// SecondsPerYear is the simple-interest year used by the tier schedule.
	SecondsPerYear int64 = 365 * 86_400

	// MaxTiers bounds the fixed-size tier table.
	MaxTiers uint32 = 4
)

// TierConfig describes one lock tier of the savings schedule.
type TierConfig struct {
	LockPeriodSeconds  int64 `json:"lock_period_seconds"`
	ApyBasisPoints     int64 `json:"apy_basis_points"`
	PenaltyBasisPoints int64 `json:"penalty_basis_points"`
	Enabled            bool  `json:"enabled"`
}

// Validate checks the configurable fields against their documented bounds.
func (t TierConfig) Validate() error {
	if t.LockPeriodSeconds < 0 {
		return errors.Wrap(ErrInvalidAmount, "lock period cannot be negative")
	}
	if t.ApyBasisPoints < 0 || t.ApyBasisPoints > BasisPointsDenom {
		return errors.Wrapf(ErrInvalidAmount, "apy must be between 0 and %d basis points", BasisPointsDenom)
	}
	if t.PenaltyBasisPoints < 0 || t.PenaltyBasisPoints > BasisPointsDenom {
		return errors.Wrapf(ErrInvalidAmount, "penalty must be between 0 and %d basis points", BasisPointsDenom)
	}
	return nil
}

// DefaultTiers returns the tier table seeded at genesis: a flexible tier and
// three locked tiers with rising rates and early-withdrawal penalties.
func DefaultTiers() []TierConfig {
	return []TierConfig{
		{LockPeriodSeconds: 0, ApyBasisPoints: 100, PenaltyBasisPoints: 0, Enabled: true},
		{LockPeriodSeconds: 30 * 86_400, ApyBasisPoints: 300, PenaltyBasisPoints: 2_500, Enabled: true},
		{LockPeriodSeconds: 90 * 86_400, ApyBasisPoints: 500, PenaltyBasisPoints: 5_000, Enabled: true},
		{LockPeriodSeconds: 180 * 86_400, ApyBasisPoints: 800, PenaltyBasisPoints: 7_500, Enabled: true},
	}
}
