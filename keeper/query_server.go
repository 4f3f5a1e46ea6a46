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

	"cosmossdk.io/collections"
	"cosmossdk.io/errors"

	"github.com/Enricrypto/vault-forge-crypto-bank/types"
)

var _ types.QueryServer = &queryServer{}

type queryServer struct {
	*Keeper
}

func NewQueryServer(keeper *Keeper) types.QueryServer {
	return &queryServer{Keeper: keeper}
}

func (k queryServer) Vault(ctx context.Context, req *types.QueryVault) (*types.QueryVaultResponse, error) {
	if req == nil {
		return nil, types.ErrInvalidRequest
	}

	vault, found, err := k.GetVault(ctx, req.Asset)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch vault")
	}
	if !found {
		return nil, errors.Wrapf(types.ErrVaultNotFound, "asset %s", req.Asset)
	}

	return &types.QueryVaultResponse{Vault: vault}, nil
}

func (k queryServer) Position(ctx context.Context, req *types.QueryPosition) (*types.QueryPositionResponse, error) {
	if req == nil {
		return nil, types.ErrInvalidRequest
	}

	owner, err := k.address.StringToBytes(req.Owner)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "unable to decode owner address %s", req.Owner)
	}

	position, err := k.GetPosition(ctx, owner, req.PositionId)
	if err != nil {
		return nil, err
	}

	return &types.QueryPositionResponse{Position: position}, nil
}

func (k queryServer) UserPositions(ctx context.Context, req *types.QueryUserPositions) (*types.QueryUserPositionsResponse, error) {
	if req == nil {
		return nil, types.ErrInvalidRequest
	}

	owner, err := k.address.StringToBytes(req.Owner)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "unable to decode owner address %s", req.Owner)
	}

	var entries []types.PositionEntry
	rng := collections.NewPrefixedPairRange[[]byte, uint64]([]byte(owner))
	err = k.Positions.Walk(ctx, rng, func(key collections.Pair[[]byte, uint64], position types.Position) (bool, error) {
		entries = append(entries, types.PositionEntry{
			PositionId: key.K2(),
			Position:   position,
		})
		return false, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to walk positions")
	}

	return &types.QueryUserPositionsResponse{Positions: entries}, nil
}

func (k queryServer) PositionValue(ctx context.Context, req *types.QueryPositionValue) (*types.QueryPositionValueResponse, error) {
	if req == nil {
		return nil, types.ErrInvalidRequest
	}

	owner, err := k.address.StringToBytes(req.Owner)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "unable to decode owner address %s", req.Owner)
	}

	position, err := k.GetPosition(ctx, owner, req.PositionId)
	if err != nil {
		return nil, err
	}

	assetValue, err := k.Keeper.ConvertToAssets(ctx, position.Asset, position.Shares)
	if err != nil {
		return nil, errors.Wrap(err, "unable to convert shares")
	}

	tier, err := k.GetTier(ctx, position.TierIndex)
	if err != nil {
		return nil, err
	}

	elapsed := k.header.GetHeaderInfo(ctx).Time.Unix() - position.DepositedAt
	if tier.LockPeriodSeconds > 0 && elapsed > tier.LockPeriodSeconds {
		elapsed = tier.LockPeriodSeconds
	}

	interest, err := k.CalculateInterest(ctx, position.TierIndex, position.PrincipalAmount, elapsed)
	if err != nil {
		return nil, errors.Wrap(err, "unable to calculate interest")
	}

	return &types.QueryPositionValueResponse{
		Shares:          position.Shares,
		AssetValue:      assetValue,
		AccruedInterest: interest,
	}, nil
}

// PreviewWithdraw quotes a withdrawal with the same math the withdrawal
// itself runs, so the preview and the executed figures always agree.
func (k queryServer) PreviewWithdraw(ctx context.Context, req *types.QueryPreviewWithdraw) (*types.QueryPreviewWithdrawResponse, error) {
	if req == nil {
		return nil, types.ErrInvalidRequest
	}

	owner, err := k.address.StringToBytes(req.Owner)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "unable to decode owner address %s", req.Owner)
	}

	position, err := k.GetPosition(ctx, owner, req.PositionId)
	if err != nil {
		return nil, err
	}

	now := k.header.GetHeaderInfo(ctx).Time.Unix()
	quote, err := k.quoteWithdrawal(ctx, position, req.Shares, now)
	if err != nil {
		return nil, err
	}

	return &types.QueryPreviewWithdrawResponse{
		Shares:          quote.Shares,
		AssetsReceived:  quote.Assets,
		Interest:        quote.Interest,
		Penalty:         quote.Penalty,
		EstimatedPayout: quote.Assets.Add(quote.Interest).Sub(quote.Penalty),
		PenaltyApplies:  quote.PenaltyApplies,
	}, nil
}

func (k queryServer) Tier(ctx context.Context, req *types.QueryTier) (*types.QueryTierResponse, error) {
	if req == nil {
		return nil, types.ErrInvalidRequest
	}

	tier, err := k.GetTier(ctx, req.Tier)
	if err != nil {
		return nil, err
	}

	return &types.QueryTierResponse{Config: tier}, nil
}

func (k queryServer) Tiers(ctx context.Context, req *types.QueryTiers) (*types.QueryTiersResponse, error) {
	if req == nil {
		return nil, types.ErrInvalidRequest
	}

	var entries []types.TierEntry
	err := k.IterateTiers(ctx, func(index uint32, tier types.TierConfig) bool {
		entries = append(entries, types.TierEntry{Tier: index, Config: tier})
		return false
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to walk tiers")
	}

	return &types.QueryTiersResponse{Tiers: entries}, nil
}

func (k queryServer) ShareBalance(ctx context.Context, req *types.QueryShareBalance) (*types.QueryShareBalanceResponse, error) {
	if req == nil {
		return nil, types.ErrInvalidRequest
	}

	holder, err := k.address.StringToBytes(req.Holder)
	if err != nil {
		return nil, errors.Wrapf(types.ErrInvalidRequest, "unable to decode holder address %s", req.Holder)
	}

	balance, err := k.GetShareBalance(ctx, req.Asset, holder)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch share balance")
	}

	return &types.QueryShareBalanceResponse{Shares: balance}, nil
}

func (k queryServer) ConvertToShares(ctx context.Context, req *types.QueryConvertToShares) (*types.QueryConvertToSharesResponse, error) {
	if req == nil {
		return nil, types.ErrInvalidRequest
	}

	shares, err := k.Keeper.ConvertToShares(ctx, req.Asset, req.Assets)
	if err != nil {
		return nil, errors.Wrap(err, "unable to convert assets")
	}

	return &types.QueryConvertToSharesResponse{Shares: shares}, nil
}

func (k queryServer) ConvertToAssets(ctx context.Context, req *types.QueryConvertToAssets) (*types.QueryConvertToAssetsResponse, error) {
	if req == nil {
		return nil, types.ErrInvalidRequest
	}

	assets, err := k.Keeper.ConvertToAssets(ctx, req.Asset, req.Shares)
	if err != nil {
		return nil, errors.Wrap(err, "unable to convert shares")
	}

	return &types.QueryConvertToAssetsResponse{Assets: assets}, nil
}

func (k queryServer) Stats(ctx context.Context, req *types.QueryStats) (*types.QueryStatsResponse, error) {
	if req == nil {
		return nil, types.ErrInvalidRequest
	}

	stats, err := k.GetStats(ctx, req.Asset)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch stats")
	}

	return &types.QueryStatsResponse{Stats: stats}, nil
}

func (k queryServer) Paused(ctx context.Context, req *types.QueryPaused) (*types.QueryPausedResponse, error) {
	if req == nil {
		return nil, types.ErrInvalidRequest
	}

	paused, err := k.GetPaused(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to fetch pause state")
	}

	return &types.QueryPausedResponse{Paused: paused}, nil
}
