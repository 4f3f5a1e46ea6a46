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

	"cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/Enricrypto/vault-forge-crypto-bank/types"
)

func (k msgServer) assertAuthority(authority string) error {
	if k.authority != authority {
		return errors.Wrapf(types.ErrUnauthorized, "expected %s, got %s", k.authority, authority)
	}
	return nil
}

// SetPaused flips the global pause flag. While paused every deposit and
// withdrawal is refused; only the admin surface stays live.
func (k msgServer) SetPaused(ctx context.Context, msg *types.MsgSetPaused) (*types.MsgSetPausedResponse, error) {
	if msg == nil {
		return nil, types.ErrInvalidRequest
	}
	if err := k.assertAuthority(msg.Authority); err != nil {
		return nil, err
	}

	if err := k.Paused.Set(ctx, msg.Paused); err != nil {
		return nil, errors.Wrap(err, "unable to set paused state")
	}

	k.logger.Info("pause flag changed", "paused", msg.Paused)

	headerInfo := k.header.GetHeaderInfo(ctx)
	if err := k.event.EventManager(ctx).Emit(ctx, &types.EventPausedSet{
		Paused:      msg.Paused,
		BlockHeight: headerInfo.Height,
		Timestamp:   headerInfo.Time.Unix(),
	}); err != nil {
		return nil, errors.Wrap(err, "unable to emit paused event")
	}

	return &types.MsgSetPausedResponse{}, nil
}

// SetSupportedAsset adds or removes an asset from the deposit allowlist.
// Removing support never touches existing vaults or positions.
func (k msgServer) SetSupportedAsset(ctx context.Context, msg *types.MsgSetSupportedAsset) (*types.MsgSetSupportedAssetResponse, error) {
	if msg == nil {
		return nil, types.ErrInvalidRequest
	}
	if err := k.assertAuthority(msg.Authority); err != nil {
		return nil, err
	}
	if err := sdk.ValidateDenom(msg.Asset); err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "invalid asset: %s", msg.Asset)
	}

	if err := k.SupportedAssets.Set(ctx, msg.Asset, msg.Supported); err != nil {
		return nil, errors.Wrap(err, "unable to set asset support")
	}

	headerInfo := k.header.GetHeaderInfo(ctx)
	if err := k.event.EventManager(ctx).Emit(ctx, &types.EventAssetSupportChanged{
		Asset:       msg.Asset,
		Supported:   msg.Supported,
		BlockHeight: headerInfo.Height,
		Timestamp:   headerInfo.Time.Unix(),
	}); err != nil {
		return nil, errors.Wrap(err, "unable to emit asset support event")
	}

	return &types.MsgSetSupportedAssetResponse{}, nil
}

// ConfigureTier writes the rate parameters of one tier. Open positions keep
// the terms they were opened with; the new parameters apply to the tier's
// future interest calculations only through the stored configuration.
func (k msgServer) ConfigureTier(ctx context.Context, msg *types.MsgConfigureTier) (*types.MsgConfigureTierResponse, error) {
	if msg == nil {
		return nil, types.ErrInvalidRequest
	}
	if err := k.assertAuthority(msg.Authority); err != nil {
		return nil, err
	}

	cfg := types.TierConfig{
		LockPeriodSeconds:  msg.LockPeriodSeconds,
		ApyBasisPoints:     msg.ApyBasisPoints,
		PenaltyBasisPoints: msg.PenaltyBasisPoints,
	}
	if _, err := k.SetTier(ctx, msg.Tier, cfg); err != nil {
		return nil, err
	}

	headerInfo := k.header.GetHeaderInfo(ctx)
	if err := k.event.EventManager(ctx).Emit(ctx, &types.EventTierConfigured{
		Tier:               msg.Tier,
		LockPeriodSeconds:  msg.LockPeriodSeconds,
		ApyBasisPoints:     msg.ApyBasisPoints,
		PenaltyBasisPoints: msg.PenaltyBasisPoints,
		BlockHeight:        headerInfo.Height,
		Timestamp:          headerInfo.Time.Unix(),
	}); err != nil {
		return nil, errors.Wrap(err, "unable to emit tier configured event")
	}

	return &types.MsgConfigureTierResponse{}, nil
}

// SetTierEnabled toggles whether a tier accepts new deposits.
func (k msgServer) SetTierEnabled(ctx context.Context, msg *types.MsgSetTierEnabled) (*types.MsgSetTierEnabledResponse, error) {
	if msg == nil {
		return nil, types.ErrInvalidRequest
	}
	if err := k.assertAuthority(msg.Authority); err != nil {
		return nil, err
	}

	if err := k.SetTierEnabledFlag(ctx, msg.Tier, msg.Enabled); err != nil {
		return nil, err
	}

	headerInfo := k.header.GetHeaderInfo(ctx)
	if err := k.event.EventManager(ctx).Emit(ctx, &types.EventTierEnabled{
		Tier:        msg.Tier,
		Enabled:     msg.Enabled,
		BlockHeight: headerInfo.Height,
		Timestamp:   headerInfo.Time.Unix(),
	}); err != nil {
		return nil, errors.Wrap(err, "unable to emit tier enabled event")
	}

	return &types.MsgSetTierEnabledResponse{}, nil
}

// RegisterReferralCode binds a code to a referrer address. Codes are
// immutable once registered.
func (k msgServer) RegisterReferralCode(ctx context.Context, msg *types.MsgRegisterReferralCode) (*types.MsgRegisterReferralCodeResponse, error) {
	if msg == nil {
		return nil, types.ErrInvalidRequest
	}
	if err := k.assertAuthority(msg.Authority); err != nil {
		return nil, err
	}
	if msg.Code == "" {
		return nil, errors.Wrap(types.ErrInvalidReferralCode, "code cannot be empty")
	}
	if _, err := k.address.StringToBytes(msg.Referrer); err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "unable to decode referrer address %s", msg.Referrer)
	}

	exists, err := k.ReferralCodes.Has(ctx, msg.Code)
	if err != nil {
		return nil, errors.Wrap(err, "unable to check referral code")
	}
	if exists {
		return nil, errors.Wrapf(types.ErrAlreadyExists, "referral code %s", msg.Code)
	}

	if err := k.ReferralCodes.Set(ctx, msg.Code, msg.Referrer); err != nil {
		return nil, errors.Wrap(err, "unable to store referral code")
	}

	headerInfo := k.header.GetHeaderInfo(ctx)
	if err := k.event.EventManager(ctx).Emit(ctx, &types.EventReferralRegistered{
		Code:        msg.Code,
		Referrer:    msg.Referrer,
		BlockHeight: headerInfo.Height,
		Timestamp:   headerInfo.Time.Unix(),
	}); err != nil {
		return nil, errors.Wrap(err, "unable to emit referral event")
	}

	return &types.MsgRegisterReferralCodeResponse{}, nil
}

// EmergencyWithdraw sweeps custody funds to a recipient while the ledger is
// paused. It bypasses share accounting entirely, so it refuses to run on a
// live ledger.
func (k msgServer) EmergencyWithdraw(ctx context.Context, msg *types.MsgEmergencyWithdraw) (*types.MsgEmergencyWithdrawResponse, error) {
	if msg == nil {
		return nil, types.ErrInvalidRequest
	}
	if err := k.assertAuthority(msg.Authority); err != nil {
		return nil, err
	}

	paused, err := k.GetPaused(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to check pause state")
	}
	if !paused {
		return nil, errors.Wrap(types.ErrInvalidRequest, "emergency withdrawal requires a paused ledger")
	}

	recipient, err := k.address.StringToBytes(msg.Recipient)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "unable to decode recipient address %s", msg.Recipient)
	}
	if msg.Amount.IsNil() || !msg.Amount.IsPositive() {
		return nil, errors.Wrap(types.ErrInvalidAmount, "amount must be positive")
	}

	balance := k.bank.GetBalance(ctx, types.VaultAddress, msg.Asset)
	if balance.Amount.LT(msg.Amount) {
		return nil, errors.Wrapf(types.ErrInsufficientBalance, "custody holds %s, requested %s", balance.Amount.String(), msg.Amount.String())
	}

	coin := sdk.NewCoin(msg.Asset, msg.Amount)
	if err := k.bank.SendCoins(ctx, types.VaultAddress, sdk.AccAddress(recipient), sdk.NewCoins(coin)); err != nil {
		return nil, errors.Wrap(err, "unable to sweep custody funds")
	}

	k.logger.Warn("emergency withdrawal executed", "asset", msg.Asset, "amount", msg.Amount.String(), "recipient", msg.Recipient)

	headerInfo := k.header.GetHeaderInfo(ctx)
	if err := k.event.EventManager(ctx).Emit(ctx, &types.EventEmergencyWithdraw{
		Asset:       msg.Asset,
		Amount:      msg.Amount,
		Recipient:   msg.Recipient,
		BlockHeight: headerInfo.Height,
		Timestamp:   headerInfo.Time.Unix(),
	}); err != nil {
		return nil, errors.Wrap(err, "unable to emit emergency withdraw event")
	}

	return &types.MsgEmergencyWithdrawResponse{}, nil
}
