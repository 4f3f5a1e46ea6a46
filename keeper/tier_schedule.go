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

package keeper

import (
	"context"
	stderrors "errors"

	"cosmossdk.io/collections"
	"cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/Enricrypto/vault-forge-crypto-bank/types"
)

// The tier schedule is pure parameter storage plus interest and penalty
// arithmetic. Configuration entry points are strict; read paths used during
// withdrawal math degrade to zero for unknown tiers so a fat-fingered tier
// index can never trap funds.

// GetTier returns the configuration for a tier index, strict on range.
func (k *Keeper) GetTier(ctx context.Context, index uint32) (types.TierConfig, error) {
	if index >= types.MaxTiers {
		return types.TierConfig{}, errors.Wrapf(types.ErrInvalidTier, "index %d out of range", index)
	}

	tier, err := k.Tiers.Get(ctx, index)
	if err != nil {
		if stderrors.Is(err, collections.ErrNotFound) {
			return types.TierConfig{}, errors.Wrapf(types.ErrInvalidTier, "index %d not configured", index)
		}
		return types.TierConfig{}, err
	}

	return tier, nil
}

// SetTier stores a tier configuration after validating it. The enabled flag
// of an existing tier is preserved; new tiers start enabled.
func (k *Keeper) SetTier(ctx context.Context, index uint32, cfg types.TierConfig) (types.TierConfig, error) {
	if index >= types.MaxTiers {
		return types.TierConfig{}, errors.Wrapf(types.ErrInvalidTier, "index %d out of range", index)
	}
	if err := cfg.Validate(); err != nil {
		return types.TierConfig{}, err
	}

	existing, err := k.Tiers.Get(ctx, index)
	switch {
	case err == nil:
		cfg.Enabled = existing.Enabled
	case stderrors.Is(err, collections.ErrNotFound):
		cfg.Enabled = true
	default:
		return types.TierConfig{}, err
	}

	if err := k.Tiers.Set(ctx, index, cfg); err != nil {
		return types.TierConfig{}, err
	}

	return cfg, nil
}

// SetTierEnabledFlag toggles a configured tier. Open positions on a disabled
// tier keep their terms; only new deposits are refused.
func (k *Keeper) SetTierEnabledFlag(ctx context.Context, index uint32, enabled bool) error {
	tier, err := k.GetTier(ctx, index)
	if err != nil {
		return err
	}

	tier.Enabled = enabled
	return k.Tiers.Set(ctx, index, tier)
}

// CalculateInterest computes simple (non-compounding) interest on principal
// over elapsed seconds at the tier's annual rate. Unknown or disabled tiers,
// negative elapsed time and non-positive principal all yield zero.
func (k *Keeper) CalculateInterest(ctx context.Context, index uint32, principal math.Int, elapsedSeconds int64) (math.Int, error) {
	if principal.IsNil() || !principal.IsPositive() || elapsedSeconds <= 0 {
		return math.ZeroInt(), nil
	}

	tier, err := k.Tiers.Get(ctx, index)
	if err != nil {
		if stderrors.Is(err, collections.ErrNotFound) {
			return math.ZeroInt(), nil
		}
		return math.ZeroInt(), err
	}
	if !tier.Enabled || tier.ApyBasisPoints == 0 {
		return math.ZeroInt(), nil
	}

	// principal * apy * elapsed / (seconds-per-year * bps denominator),
	// floored. Product order keeps precision; math.Int is arbitrary width
	// so the intermediate cannot overflow.
	numerator := principal.
		Mul(math.NewInt(tier.ApyBasisPoints)).
		Mul(math.NewInt(elapsedSeconds))
	denominator := math.NewInt(types.SecondsPerYear).Mul(math.NewInt(types.BasisPointsDenom))

	return numerator.Quo(denominator), nil
}

// CalculatePenalty computes the flat early-exit penalty on accrued
// interest. The penalty does not scale with how early the exit is. Unknown
// and disabled tiers charge nothing.
func (k *Keeper) CalculatePenalty(ctx context.Context, index uint32, interest math.Int) (math.Int, error) {
	if interest.IsNil() || !interest.IsPositive() {
		return math.ZeroInt(), nil
	}

	tier, err := k.Tiers.Get(ctx, index)
	if err != nil {
		if stderrors.Is(err, collections.ErrNotFound) {
			return math.ZeroInt(), nil
		}
		return math.ZeroInt(), err
	}
	if !tier.Enabled || tier.PenaltyBasisPoints == 0 {
		return math.ZeroInt(), nil
	}

	return interest.Mul(math.NewInt(tier.PenaltyBasisPoints)).Quo(math.NewInt(types.BasisPointsDenom)), nil
}

// CanWithdrawWithoutPenalty reports whether a position deposited at the
// given time has cleared its tier's lock. Flexible tiers are always clear;
// an unknown tier never is.
func (k *Keeper) CanWithdrawWithoutPenalty(ctx context.Context, index uint32, depositedAt, now int64) (bool, error) {
	tier, err := k.Tiers.Get(ctx, index)
	if err != nil {
		if stderrors.Is(err, collections.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if tier.LockPeriodSeconds == 0 {
		return true, nil
	}

	return now >= depositedAt+tier.LockPeriodSeconds, nil
}

// GetLockEndTimestamp returns the timestamp at which a deposit made at the
// given time unlocks. Unknown and disabled tiers, and tiers without a lock,
// return zero.
func (k *Keeper) GetLockEndTimestamp(ctx context.Context, index uint32, depositedAt int64) (int64, error) {
	tier, err := k.Tiers.Get(ctx, index)
	if err != nil {
		if stderrors.Is(err, collections.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	if !tier.Enabled || tier.LockPeriodSeconds == 0 {
		return 0, nil
	}

	return depositedAt + tier.LockPeriodSeconds, nil
}

// IterateTiers walks every configured tier in index order.
func (k *Keeper) IterateTiers(ctx context.Context, fn func(index uint32, tier types.TierConfig) (stop bool)) error {
	return k.Tiers.Walk(ctx, nil, func(index uint32, tier types.TierConfig) (bool, error) {
		return fn(index, tier), nil
	})
}
