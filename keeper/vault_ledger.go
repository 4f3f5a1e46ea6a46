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

// The vault ledger converts deposited assets to shares and back for one
// asset pool. It trusts its single authorized caller (the orchestrator) with
// everything but never lets rounding favor a depositor over the pool.

// assertOrchestrator rejects every caller except the orchestrator identity
// injected at construction time.
func (k *Keeper) assertOrchestrator(caller sdk.AccAddress) error {
	if !caller.Equals(k.orchestrator) {
		return errors.Wrapf(types.ErrUnauthorized, "caller %s is not the position orchestrator", caller.String())
	}
	return nil
}

// CreateVault initializes the pool record for an asset. Vaults are created
// once and never removed.
func (k *Keeper) CreateVault(ctx context.Context, caller sdk.AccAddress, asset string) error {
	if err := k.ledgerGuard.enter(); err != nil {
		return err
	}
	defer k.ledgerGuard.exit()

	if err := k.assertOrchestrator(caller); err != nil {
		return err
	}
	if err := sdk.ValidateDenom(asset); err != nil {
		return errors.Wrapf(types.ErrInvalidRequest, "invalid asset: %s", asset)
	}

	exists, err := k.Vaults.Has(ctx, asset)
	if err != nil {
		return errors.Wrap(err, "unable to check vault existence")
	}
	if exists {
		return errors.Wrapf(types.ErrAlreadyExists, "vault for %s", asset)
	}

	vault := types.Vault{
		TotalAssets: math.ZeroInt(),
		TotalShares: math.ZeroInt(),
	}
	if err := k.Vaults.Set(ctx, asset, vault); err != nil {
		return errors.Wrap(err, "unable to store vault")
	}

	k.logger.Info("created vault", "asset", asset)

	headerInfo := k.header.GetHeaderInfo(ctx)
	return k.event.EventManager(ctx).Emit(ctx, &types.EventVaultCreated{
		Asset:       asset,
		BlockHeight: headerInfo.Height,
		Timestamp:   headerInfo.Time.Unix(),
	})
}

// VaultDeposit mints shares against a deposit of assets. The first deposit
// into a vault mints a fixed amount of dead shares to the reserved burn
// holder; every later deposit floors in favor of the pool. The caller is
// responsible for having moved the deposited assets into vault custody.
func (k *Keeper) VaultDeposit(ctx context.Context, caller sdk.AccAddress, asset string, assets math.Int, receiver sdk.AccAddress) (math.Int, error) {
	if err := k.ledgerGuard.enter(); err != nil {
		return math.ZeroInt(), err
	}
	defer k.ledgerGuard.exit()

	if err := k.assertOrchestrator(caller); err != nil {
		return math.ZeroInt(), err
	}
	if assets.IsNil() || !assets.IsPositive() {
		return math.ZeroInt(), errors.Wrap(types.ErrInvalidAmount, "deposit amount must be positive")
	}
	if receiver.Empty() {
		return math.ZeroInt(), errors.Wrap(types.ErrInvalidRequest, "receiver cannot be empty")
	}

	vault, found, err := k.GetVault(ctx, asset)
	if err != nil {
		return math.ZeroInt(), errors.Wrap(err, "unable to fetch vault")
	}
	if !found {
		return math.ZeroInt(), errors.Wrapf(types.ErrVaultNotFound, "asset %s", asset)
	}

	var shares math.Int
	if vault.TotalShares.IsZero() {
		if assets.LT(types.MinFirstDeposit) {
			return math.ZeroInt(), errors.Wrapf(types.ErrInvalidAmount, "first deposit below minimum of %s", types.MinFirstDeposit.String())
		}

		shares = assets.Sub(types.DeadShares)
		if err := k.mintShares(ctx, asset, types.DeadShareAddress, types.DeadShares); err != nil {
			return math.ZeroInt(), errors.Wrap(err, "unable to mint dead shares")
		}

		vault.TotalAssets = assets
		vault.TotalShares = assets
	} else {
		if vault.TotalAssets.IsZero() {
			return math.ZeroInt(), errors.Wrapf(types.ErrInvalidAmount, "vault for %s has shares but no assets", asset)
		}

		shares = assets.Mul(vault.TotalShares).Quo(vault.TotalAssets)
		if shares.IsZero() {
			return math.ZeroInt(), errors.Wrap(types.ErrInvalidAmount, "deposit too small to mint shares")
		}

		if vault.TotalAssets, err = vault.TotalAssets.SafeAdd(assets); err != nil {
			return math.ZeroInt(), errors.Wrap(err, "unable to update total assets")
		}
		if vault.TotalShares, err = vault.TotalShares.SafeAdd(shares); err != nil {
			return math.ZeroInt(), errors.Wrap(err, "unable to update total shares")
		}
	}

	if err := k.mintShares(ctx, asset, receiver, shares); err != nil {
		return math.ZeroInt(), errors.Wrap(err, "unable to mint shares")
	}
	if err := k.Vaults.Set(ctx, asset, vault); err != nil {
		return math.ZeroInt(), errors.Wrap(err, "unable to persist vault")
	}

	headerInfo := k.header.GetHeaderInfo(ctx)
	if err := k.event.EventManager(ctx).Emit(ctx, &types.EventSharesMinted{
		Asset:       asset,
		Holder:      receiver.String(),
		Shares:      shares,
		Assets:      assets,
		BlockHeight: headerInfo.Height,
		Timestamp:   headerInfo.Time.Unix(),
	}); err != nil {
		return math.ZeroInt(), errors.Wrap(err, "unable to emit shares minted event")
	}

	return shares, nil
}

// VaultWithdraw burns shares held by holder and moves the corresponding
// assets from vault custody to receiver. The ledger does not check that the
// original caller is entitled to the holder's shares; the orchestrator owns
// that check. Conversion floors so the pool never goes into deficit.
func (k *Keeper) VaultWithdraw(ctx context.Context, caller sdk.AccAddress, asset string, shares math.Int, holder, receiver sdk.AccAddress) (math.Int, error) {
	if err := k.ledgerGuard.enter(); err != nil {
		return math.ZeroInt(), err
	}
	defer k.ledgerGuard.exit()

	if err := k.assertOrchestrator(caller); err != nil {
		return math.ZeroInt(), err
	}
	if shares.IsNil() || !shares.IsPositive() {
		return math.ZeroInt(), errors.Wrap(types.ErrInvalidAmount, "share amount must be positive")
	}
	if receiver.Empty() {
		return math.ZeroInt(), errors.Wrap(types.ErrInvalidRequest, "receiver cannot be empty")
	}

	vault, found, err := k.GetVault(ctx, asset)
	if err != nil {
		return math.ZeroInt(), errors.Wrap(err, "unable to fetch vault")
	}
	if !found {
		return math.ZeroInt(), errors.Wrapf(types.ErrVaultNotFound, "asset %s", asset)
	}
	if vault.TotalShares.IsZero() {
		return math.ZeroInt(), errors.Wrapf(types.ErrInsufficientBalance, "vault for %s has no shares", asset)
	}

	assets := shares.Mul(vault.TotalAssets).Quo(vault.TotalShares)
	if assets.IsZero() {
		return math.ZeroInt(), errors.Wrap(types.ErrInvalidAmount, "withdrawal too small to release assets")
	}
	if assets.GT(vault.TotalAssets) {
		return math.ZeroInt(), errors.Wrapf(types.ErrInsufficientBalance, "withdrawal of %s exceeds vault assets %s", assets.String(), vault.TotalAssets.String())
	}

	if err := k.burnShares(ctx, asset, holder, shares); err != nil {
		return math.ZeroInt(), err
	}

	if vault.TotalAssets, err = vault.TotalAssets.SafeSub(assets); err != nil {
		return math.ZeroInt(), errors.Wrap(err, "unable to update total assets")
	}
	if vault.TotalShares, err = vault.TotalShares.SafeSub(shares); err != nil {
		return math.ZeroInt(), errors.Wrap(err, "unable to update total shares")
	}
	if err := k.Vaults.Set(ctx, asset, vault); err != nil {
		return math.ZeroInt(), errors.Wrap(err, "unable to persist vault")
	}

	// State reflects the withdrawal before the custodian runs.
	coin := sdk.NewCoin(asset, assets)
	if err := k.bank.SendCoins(ctx, types.VaultAddress, receiver, sdk.NewCoins(coin)); err != nil {
		return math.ZeroInt(), errors.Wrap(err, "unable to move assets out of vault custody")
	}

	headerInfo := k.header.GetHeaderInfo(ctx)
	if err := k.event.EventManager(ctx).Emit(ctx, &types.EventSharesBurned{
		Asset:       asset,
		Holder:      holder.String(),
		Shares:      shares,
		Assets:      assets,
		BlockHeight: headerInfo.Height,
		Timestamp:   headerInfo.Time.Unix(),
	}); err != nil {
		return math.ZeroInt(), errors.Wrap(err, "unable to emit shares burned event")
	}

	return assets, nil
}

// DistributeYield grows the pool without minting shares, raising the share
// price for every holder. The caller is responsible for having moved the
// distributed amount into vault custody first.
func (k *Keeper) DistributeYield(ctx context.Context, caller sdk.AccAddress, asset string, amount math.Int) error {
	if err := k.ledgerGuard.enter(); err != nil {
		return err
	}
	defer k.ledgerGuard.exit()

	if err := k.assertOrchestrator(caller); err != nil {
		return err
	}
	if amount.IsNil() || !amount.IsPositive() {
		return errors.Wrap(types.ErrInvalidAmount, "yield amount must be positive")
	}

	vault, found, err := k.GetVault(ctx, asset)
	if err != nil {
		return errors.Wrap(err, "unable to fetch vault")
	}
	if !found {
		return errors.Wrapf(types.ErrVaultNotFound, "asset %s", asset)
	}

	if vault.TotalAssets, err = vault.TotalAssets.SafeAdd(amount); err != nil {
		return errors.Wrap(err, "unable to update total assets")
	}
	if err := k.Vaults.Set(ctx, asset, vault); err != nil {
		return errors.Wrap(err, "unable to persist vault")
	}

	k.logger.Info("distributed yield", "asset", asset, "amount", amount.String())

	headerInfo := k.header.GetHeaderInfo(ctx)
	return k.event.EventManager(ctx).Emit(ctx, &types.EventYieldDistributed{
		Asset:       asset,
		Amount:      amount,
		BlockHeight: headerInfo.Height,
		Timestamp:   headerInfo.Time.Unix(),
	})
}

// ConvertToShares mirrors the deposit formula without mutating state. A
// missing vault is treated as an empty one.
func (k *Keeper) ConvertToShares(ctx context.Context, asset string, assets math.Int) (math.Int, error) {
	if assets.IsNil() || !assets.IsPositive() {
		return math.ZeroInt(), nil
	}

	vault, found, err := k.GetVault(ctx, asset)
	if err != nil {
		return math.ZeroInt(), err
	}
	if !found || vault.TotalShares.IsZero() {
		shares := assets.Sub(types.DeadShares)
		if shares.IsNegative() {
			return math.ZeroInt(), nil
		}
		return shares, nil
	}
	if vault.TotalAssets.IsZero() {
		return math.ZeroInt(), nil
	}

	return assets.Mul(vault.TotalShares).Quo(vault.TotalAssets), nil
}

// ConvertToAssets mirrors the withdrawal formula without mutating state.
func (k *Keeper) ConvertToAssets(ctx context.Context, asset string, shares math.Int) (math.Int, error) {
	if shares.IsNil() || !shares.IsPositive() {
		return math.ZeroInt(), nil
	}

	vault, found, err := k.GetVault(ctx, asset)
	if err != nil {
		return math.ZeroInt(), err
	}
	if !found || vault.TotalShares.IsZero() {
		return math.ZeroInt(), nil
	}

	return shares.Mul(vault.TotalAssets).Quo(vault.TotalShares), nil
}

// GetVault returns the pool record for an asset. The boolean flag indicates
// whether the vault has been created.
func (k *Keeper) GetVault(ctx context.Context, asset string) (types.Vault, bool, error) {
	vault, err := k.Vaults.Get(ctx, asset)
	if err != nil {
		if stderrors.Is(err, collections.ErrNotFound) {
			return types.Vault{}, false, nil
		}
		return types.Vault{}, false, err
	}

	return vault, true, nil
}

// GetShareBalance returns the holder's share balance in an asset's pool,
// zero when no balance has been recorded.
func (k *Keeper) GetShareBalance(ctx context.Context, asset string, holder sdk.AccAddress) (math.Int, error) {
	balance, err := k.ShareBalances.Get(ctx, collections.Join(asset, []byte(holder)))
	if err != nil {
		if stderrors.Is(err, collections.ErrNotFound) {
			return math.ZeroInt(), nil
		}
		return math.ZeroInt(), err
	}

	return balance, nil
}

// TotalShareBalances sums every holder balance in an asset's pool, the dead
// shares included. It exists for invariant checks.
func (k *Keeper) TotalShareBalances(ctx context.Context, asset string) (math.Int, error) {
	total := math.ZeroInt()

	rng := collections.NewPrefixedPairRange[string, []byte](asset)
	err := k.ShareBalances.Walk(ctx, rng, func(_ collections.Pair[string, []byte], balance math.Int) (bool, error) {
		var err error
		total, err = total.SafeAdd(balance)
		return err != nil, err
	})
	if err != nil {
		return math.ZeroInt(), err
	}

	return total, nil
}

func (k *Keeper) mintShares(ctx context.Context, asset string, holder sdk.AccAddress, shares math.Int) error {
	balance, err := k.GetShareBalance(ctx, asset, holder)
	if err != nil {
		return err
	}

	if balance, err = balance.SafeAdd(shares); err != nil {
		return err
	}

	return k.ShareBalances.Set(ctx, collections.Join(asset, []byte(holder)), balance)
}

func (k *Keeper) burnShares(ctx context.Context, asset string, holder sdk.AccAddress, shares math.Int) error {
	balance, err := k.GetShareBalance(ctx, asset, holder)
	if err != nil {
		return err
	}

	if balance.LT(shares) {
		return errors.Wrapf(types.ErrInsufficientBalance, "holder %s has %s shares, burning %s", holder.String(), balance.String(), shares.String())
	}

	return k.ShareBalances.Set(ctx, collections.Join(asset, []byte(holder)), balance.Sub(shares))
}
