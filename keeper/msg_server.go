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
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/Enricrypto/vault-forge-crypto-bank/types"
)

var _ types.MsgServer = &msgServer{}

type msgServer struct {
	*Keeper
}

func NewMsgServer(keeper *Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

// Deposit opens a time-locked savings position. Funds enter vault custody
// before any shares are minted; all checks run before any state is touched.
func (k msgServer) Deposit(ctx context.Context, msg *types.MsgDeposit) (*types.MsgDepositResponse, error) {
	if msg == nil {
		return nil, types.ErrInvalidRequest
	}

	if err := k.positionGuard.enter(); err != nil {
		return nil, err
	}
	defer k.positionGuard.exit()

	paused, err := k.GetPaused(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to check pause state")
	}
	if paused {
		return nil, types.ErrPaused
	}

	depositor, err := k.address.StringToBytes(msg.Depositor)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "unable to decode depositor address %s", msg.Depositor)
	}
	if msg.Amount.IsNil() || !msg.Amount.IsPositive() {
		return nil, errors.Wrap(types.ErrInvalidAmount, "deposit amount must be positive")
	}
	if msg.Amount.LT(types.MinDeposit) {
		return nil, errors.Wrapf(types.ErrInvalidAmount, "deposit below minimum of %s", types.MinDeposit.String())
	}

	supported, err := k.IsAssetSupported(ctx, msg.Asset)
	if err != nil {
		return nil, errors.Wrap(err, "unable to check asset support")
	}
	if !supported {
		return nil, errors.Wrapf(types.ErrAssetNotSupported, "asset %s", msg.Asset)
	}

	tier, err := k.GetTier(ctx, msg.Tier)
	if err != nil {
		return nil, err
	}
	if !tier.Enabled {
		return nil, errors.Wrapf(types.ErrInvalidTier, "tier %d is disabled", msg.Tier)
	}

	referrer, err := k.resolveReferral(ctx, msg.ReferralCode, msg.Depositor)
	if err != nil {
		return nil, err
	}

	_, found, err := k.GetVault(ctx, msg.Asset)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch vault")
	}
	if !found {
		if err := k.CreateVault(ctx, k.orchestrator, msg.Asset); err != nil {
			return nil, errors.Wrap(err, "unable to create vault")
		}
	}

	// The custodian runs before shares exist for this deposit, so a
	// re-entrant callback finds nothing to withdraw and trips the guard.
	coin := sdk.NewCoin(msg.Asset, msg.Amount)
	if err := k.bank.SendCoins(ctx, sdk.AccAddress(depositor), types.VaultAddress, sdk.NewCoins(coin)); err != nil {
		return nil, errors.Wrap(err, "unable to move deposit into vault custody")
	}

	shares, err := k.VaultDeposit(ctx, k.orchestrator, msg.Asset, msg.Amount, sdk.AccAddress(depositor))
	if err != nil {
		return nil, err
	}

	headerInfo := k.header.GetHeaderInfo(ctx)
	now := headerInfo.Time.Unix()

	positionID, err := k.nextPositionID(ctx, depositor)
	if err != nil {
		return nil, errors.Wrap(err, "unable to allocate position id")
	}

	position := types.Position{
		Owner:           msg.Depositor,
		Asset:           msg.Asset,
		PrincipalAmount: msg.Amount,
		Shares:          shares,
		TierIndex:       msg.Tier,
		DepositedAt:     now,
		LockEndsAt:      now + tier.LockPeriodSeconds,
		Referrer:        referrer,
	}
	if err := k.Positions.Set(ctx, collections.Join([]byte(depositor), positionID), position); err != nil {
		return nil, errors.Wrap(err, "unable to store position")
	}

	if err := k.updateStats(ctx, msg.Asset, func(stats *types.VaultStats) {
		stats.Deposits++
		stats.OpenPositions++
	}); err != nil {
		return nil, errors.Wrap(err, "unable to update stats")
	}

	if err := k.event.EventManager(ctx).Emit(ctx, &types.EventDeposit{
		Owner:       msg.Depositor,
		Asset:       msg.Asset,
		Amount:      msg.Amount,
		Shares:      shares,
		Tier:        msg.Tier,
		PositionId:  positionID,
		Referrer:    referrer,
		BlockHeight: headerInfo.Height,
		Timestamp:   now,
	}); err != nil {
		return nil, errors.Wrap(err, "unable to emit deposit event")
	}

	return &types.MsgDepositResponse{
		PositionId: positionID,
		Shares:     shares,
		LockEndsAt: position.LockEndsAt,
	}, nil
}

// Withdraw burns shares out of a position and pays the owner principal plus
// accrued interest, less the early-exit penalty when the lock has not
// elapsed. Penalties stay in the pool as yield for remaining holders. All
// position state is final before the custodian moves a single token.
func (k msgServer) Withdraw(ctx context.Context, msg *types.MsgWithdraw) (*types.MsgWithdrawResponse, error) {
	if msg == nil {
		return nil, types.ErrInvalidRequest
	}

	if err := k.positionGuard.enter(); err != nil {
		return nil, err
	}
	defer k.positionGuard.exit()

	paused, err := k.GetPaused(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to check pause state")
	}
	if paused {
		return nil, types.ErrPaused
	}

	owner, err := k.address.StringToBytes(msg.Owner)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "unable to decode owner address %s", msg.Owner)
	}

	position, err := k.GetPosition(ctx, owner, msg.PositionId)
	if err != nil {
		return nil, err
	}

	headerInfo := k.header.GetHeaderInfo(ctx)
	now := headerInfo.Time.Unix()

	quote, err := k.quoteWithdrawal(ctx, position, msg.Shares, now)
	if err != nil {
		return nil, err
	}

	// Shares shrink before principal so the reduction sees the pre-mutation
	// share count in its denominator.
	sharesBefore := position.Shares
	position.Shares = sharesBefore.Sub(quote.Shares)
	position.PrincipalAmount = position.PrincipalAmount.Sub(
		position.PrincipalAmount.Mul(quote.Shares).Quo(sharesBefore),
	)
	if err := k.Positions.Set(ctx, collections.Join([]byte(owner), msg.PositionId), position); err != nil {
		return nil, errors.Wrap(err, "unable to persist position")
	}

	assetsReceived, err := k.VaultWithdraw(ctx, k.orchestrator, position.Asset, quote.Shares, sdk.AccAddress(owner), types.ModuleAddress)
	if err != nil {
		return nil, err
	}

	// assetsReceived and the quote's asset figure are the same floor
	// conversion evaluated against the same pool state.
	payout := assetsReceived.Add(quote.Interest).Sub(quote.Penalty)
	if err := k.bank.SendCoins(ctx, types.ModuleAddress, sdk.AccAddress(owner), sdk.NewCoins(sdk.NewCoin(position.Asset, payout))); err != nil {
		return nil, errors.Wrap(err, "unable to pay withdrawal")
	}

	if quote.Penalty.IsPositive() {
		if err := k.bank.SendCoins(ctx, types.ModuleAddress, types.VaultAddress, sdk.NewCoins(sdk.NewCoin(position.Asset, quote.Penalty))); err != nil {
			return nil, errors.Wrap(err, "unable to move penalty into vault custody")
		}
		if err := k.DistributeYield(ctx, k.orchestrator, position.Asset, quote.Penalty); err != nil {
			return nil, errors.Wrap(err, "unable to redistribute penalty")
		}
	}

	if err := k.updateStats(ctx, position.Asset, func(stats *types.VaultStats) {
		stats.Withdrawals++
		if !position.IsOpen() && stats.OpenPositions > 0 {
			stats.OpenPositions--
		}
		stats.PenaltiesRedistributed = stats.PenaltiesRedistributed.Add(quote.Penalty)
	}); err != nil {
		return nil, errors.Wrap(err, "unable to update stats")
	}

	if err := k.event.EventManager(ctx).Emit(ctx, &types.EventWithdraw{
		Owner:        msg.Owner,
		Asset:        position.Asset,
		FinalAmount:  payout,
		SharesBurned: quote.Shares,
		PositionId:   msg.PositionId,
		Interest:     quote.Interest,
		Penalty:      quote.Penalty,
		BlockHeight:  headerInfo.Height,
		Timestamp:    now,
	}); err != nil {
		return nil, errors.Wrap(err, "unable to emit withdraw event")
	}

	return &types.MsgWithdrawResponse{
		Amount:       payout,
		SharesBurned: quote.Shares,
		Interest:     quote.Interest,
		Penalty:      quote.Penalty,
	}, nil
}

// withdrawalQuote is the outcome of the withdrawal math before any state
// changes: how many shares burn, what they convert to, and the interest and
// penalty figures pro-rated to the withdrawn portion.
type withdrawalQuote struct {
	Shares         math.Int
	Assets         math.Int
	Interest       math.Int
	Penalty        math.Int
	PenaltyApplies bool
}

// quoteWithdrawal resolves the requested share amount against a position and
// computes the full withdrawal figures without mutating anything. Interest
// accrues on the position's principal, capped at the lock period for locked
// tiers, then both interest and penalty scale down pro rata for partial
// withdrawals. The penalty never exceeds the interest it is charged against.
func (k *Keeper) quoteWithdrawal(ctx context.Context, position types.Position, requested math.Int, now int64) (withdrawalQuote, error) {
	if !position.IsOpen() {
		return withdrawalQuote{}, errors.Wrap(types.ErrInsufficientShares, "position has no shares")
	}

	shares := requested
	if shares.IsNil() || shares.IsZero() {
		shares = position.Shares
	}
	if shares.IsNegative() {
		return withdrawalQuote{}, errors.Wrap(types.ErrInvalidAmount, "share amount cannot be negative")
	}
	if shares.GT(position.Shares) {
		return withdrawalQuote{}, errors.Wrapf(types.ErrInsufficientShares, "position holds %s shares, requested %s", position.Shares.String(), shares.String())
	}

	tier, err := k.GetTier(ctx, position.TierIndex)
	if err != nil {
		return withdrawalQuote{}, err
	}

	elapsed := now - position.DepositedAt
	if tier.LockPeriodSeconds > 0 && elapsed > tier.LockPeriodSeconds {
		elapsed = tier.LockPeriodSeconds
	}

	interestFull, err := k.CalculateInterest(ctx, position.TierIndex, position.PrincipalAmount, elapsed)
	if err != nil {
		return withdrawalQuote{}, err
	}

	penaltyApplies := tier.LockPeriodSeconds > 0 && now < position.LockEndsAt
	penaltyFull := math.ZeroInt()
	if penaltyApplies {
		if penaltyFull, err = k.CalculatePenalty(ctx, position.TierIndex, interestFull); err != nil {
			return withdrawalQuote{}, err
		}
	}

	interest := interestFull.Mul(shares).Quo(position.Shares)
	penalty := penaltyFull.Mul(shares).Quo(position.Shares)
	if penalty.GT(interest) {
		penalty = interest
	}

	assets, err := k.ConvertToAssets(ctx, position.Asset, shares)
	if err != nil {
		return withdrawalQuote{}, err
	}

	return withdrawalQuote{
		Shares:         shares,
		Assets:         assets,
		Interest:       interest,
		Penalty:        penalty,
		PenaltyApplies: penaltyApplies,
	}, nil
}

// GetPosition fetches a position by owner and id.
func (k *Keeper) GetPosition(ctx context.Context, owner []byte, id uint64) (types.Position, error) {
	position, err := k.Positions.Get(ctx, collections.Join(owner, id))
	if err != nil {
		if stderrors.Is(err, collections.ErrNotFound) {
			return types.Position{}, errors.Wrapf(types.ErrPositionNotFound, "id %d", id)
		}
		return types.Position{}, err
	}

	return position, nil
}

// IsAssetSupported reports whether deposits in an asset are accepted.
func (k *Keeper) IsAssetSupported(ctx context.Context, asset string) (bool, error) {
	supported, err := k.SupportedAssets.Get(ctx, asset)
	if err != nil {
		if stderrors.Is(err, collections.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	return supported, nil
}

// resolveReferral maps a referral code to its registered referrer address.
// Empty codes resolve to no referrer; unknown codes and self-referrals are
// rejected.
func (k *Keeper) resolveReferral(ctx context.Context, code, depositor string) (string, error) {
	if code == "" {
		return "", nil
	}

	referrer, err := k.ReferralCodes.Get(ctx, code)
	if err != nil {
		if stderrors.Is(err, collections.ErrNotFound) {
			return "", errors.Wrapf(types.ErrInvalidReferralCode, "code %s", code)
		}
		return "", err
	}
	if referrer == depositor {
		return "", types.ErrCannotReferSelf
	}

	return referrer, nil
}

// nextPositionID allocates the next id in the owner's sequence, starting
// at 1.
func (k *Keeper) nextPositionID(ctx context.Context, owner []byte) (uint64, error) {
	id, err := k.PositionSequence.Get(ctx, owner)
	if err != nil {
		if !stderrors.Is(err, collections.ErrNotFound) {
			return 0, err
		}
		id = 0
	}

	id += 1
	if err := k.PositionSequence.Set(ctx, owner, id); err != nil {
		return 0, err
	}

	return id, nil
}

// GetStats returns the per-asset counters, zeroed when never touched.
func (k *Keeper) GetStats(ctx context.Context, asset string) (types.VaultStats, error) {
	stats, err := k.Stats.Get(ctx, asset)
	if err != nil {
		if stderrors.Is(err, collections.ErrNotFound) {
			return types.VaultStats{PenaltiesRedistributed: math.ZeroInt()}, nil
		}
		return types.VaultStats{}, err
	}

	return stats, nil
}

func (k *Keeper) updateStats(ctx context.Context, asset string, mutate func(*types.VaultStats)) error {
	stats, err := k.GetStats(ctx, asset)
	if err != nil {
		return err
	}

	mutate(&stats)
	return k.Stats.Set(ctx, asset, stats)
}
