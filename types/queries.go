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

import (
	"context"

	"cosmossdk.io/math"
)

// QueryServer is the read-only surface of the savings ledger. Queries never
// mutate state; calculator-backed previews degrade to zero figures for
// invalid or disabled tiers instead of failing.
type QueryServer interface {
	Vault(ctx context.Context, req *QueryVault) (*QueryVaultResponse, error)
	Position(ctx context.Context, req *QueryPosition) (*QueryPositionResponse, error)
	UserPositions(ctx context.Context, req *QueryUserPositions) (*QueryUserPositionsResponse, error)
	PositionValue(ctx context.Context, req *QueryPositionValue) (*QueryPositionValueResponse, error)
	PreviewWithdraw(ctx context.Context, req *QueryPreviewWithdraw) (*QueryPreviewWithdrawResponse, error)
	Tier(ctx context.Context, req *QueryTier) (*QueryTierResponse, error)
	Tiers(ctx context.Context, req *QueryTiers) (*QueryTiersResponse, error)
	ShareBalance(ctx context.Context, req *QueryShareBalance) (*QueryShareBalanceResponse, error)
	ConvertToShares(ctx context.Context, req *QueryConvertToShares) (*QueryConvertToSharesResponse, error)
	ConvertToAssets(ctx context.Context, req *QueryConvertToAssets) (*QueryConvertToAssetsResponse, error)
	Stats(ctx context.Context, req *QueryStats) (*QueryStatsResponse, error)
	Paused(ctx context.Context, req *QueryPaused) (*QueryPausedResponse, error)
}

type QueryVault struct {
	Asset string
}

type QueryVaultResponse struct {
	Vault Vault
}

type QueryPosition struct {
	Owner      string
	PositionId uint64
}

type QueryPositionResponse struct {
	Position Position
}

type QueryUserPositions struct {
	Owner string
}

type PositionEntry struct {
	PositionId uint64
	Position   Position
}

type QueryUserPositionsResponse struct {
	Positions []PositionEntry
}

type QueryPositionValue struct {
	Owner      string
	PositionId uint64
}

type QueryPositionValueResponse struct {
	Shares          math.Int
	AssetValue      math.Int
	AccruedInterest math.Int
}

// QueryPreviewWithdraw mirrors MsgWithdraw without mutating anything. A nil
// or zero Shares field previews a full withdrawal.
type QueryPreviewWithdraw struct {
	Owner      string
	PositionId uint64
	Shares     math.Int
}

type QueryPreviewWithdrawResponse struct {
	Shares          math.Int
	AssetsReceived  math.Int
	Interest        math.Int
	Penalty         math.Int
	EstimatedPayout math.Int
	PenaltyApplies  bool
}

type QueryTier struct {
	Tier uint32
}

type QueryTierResponse struct {
	Config TierConfig
}

type QueryTiers struct{}

type TierEntry struct {
	Tier   uint32
	Config TierConfig
}

type QueryTiersResponse struct {
	Tiers []TierEntry
}

type QueryShareBalance struct {
	Asset  string
	Holder string
}

type QueryShareBalanceResponse struct {
	Shares math.Int
}

type QueryConvertToShares struct {
	Asset  string
	Assets math.Int
}

type QueryConvertToSharesResponse struct {
	Shares math.Int
}

type QueryConvertToAssets struct {
	Asset  string
	Shares math.Int
}

type QueryConvertToAssetsResponse struct {
	Assets math.Int
}

type QueryStats struct {
	Asset string
}

type QueryStatsResponse struct {
	Stats VaultStats
}

type QueryPaused struct{}

type QueryPausedResponse struct {
	Paused bool
}
