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
	"errors"

	"cosmossdk.io/collections"
	"cosmossdk.io/core/address"
	"cosmossdk.io/core/event"
	"cosmossdk.io/core/header"
	"cosmossdk.io/core/store"
	"cosmossdk.io/log"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/Enricrypto/vault-forge-crypto-bank/types"
)

// Keeper owns every piece of ledger state. The vault ledger, the tier
// schedule and the position orchestrator all operate on it; the host
// environment applies each operation atomically, so the keeper never retries
// or partially commits on its own.
type Keeper struct {
	authority    string
	orchestrator sdk.AccAddress

	store store.KVStoreService

	logger  log.Logger
	header  header.Service
	event   event.Service
	address address.Codec
	bank    types.BankKeeper

	// Separate non-reentrant guards for the two mutating surfaces: the
	// orchestrator legitimately calls into the ledger mid-operation, but the
	// untrusted custodian must not re-enter either of them.
	ledgerGuard   reentrancyGuard
	positionGuard reentrancyGuard

	Paused           collections.Item[bool]
	Vaults           collections.Map[string, types.Vault]
	ShareBalances    collections.Map[collections.Pair[string, []byte], math.Int]
	Tiers            collections.Map[uint32, types.TierConfig]
	SupportedAssets  collections.Map[string, bool]
	PositionSequence collections.Map[[]byte, uint64]
	Positions        collections.Map[collections.Pair[[]byte, uint64], types.Position]
	ReferralCodes    collections.Map[string, string]
	Stats            collections.Map[string, types.VaultStats]
}

func NewKeeper(
	authority string,
	orchestrator sdk.AccAddress,
	store store.KVStoreService,
	logger log.Logger,
	header header.Service,
	event event.Service,
	address address.Codec,
	bank types.BankKeeper,
) *Keeper {
	builder := collections.NewSchemaBuilder(store)

	keeper := &Keeper{
		authority:    authority,
		orchestrator: orchestrator,

		store: store,

		logger:  logger.With("module", types.ModuleName),
		header:  header,
		event:   event,
		address: address,
		bank:    bank,

		Paused:           collections.NewItem(builder, types.PausedKey, "paused", collections.BoolValue),
		Vaults:           collections.NewMap(builder, types.VaultPrefix, "vaults", collections.StringKey, types.CollValue[types.Vault]("vault")),
		ShareBalances:    collections.NewMap(builder, types.ShareBalancePrefix, "share_balances", collections.PairKeyCodec(collections.StringKey, collections.BytesKey), sdk.IntValue),
		Tiers:            collections.NewMap(builder, types.TierPrefix, "tiers", collections.Uint32Key, types.CollValue[types.TierConfig]("tier_config")),
		SupportedAssets:  collections.NewMap(builder, types.SupportedAssetPrefix, "supported_assets", collections.StringKey, collections.BoolValue),
		PositionSequence: collections.NewMap(builder, types.PositionSequencePrefix, "position_sequence", collections.BytesKey, collections.Uint64Value),
		Positions:        collections.NewMap(builder, types.PositionPrefix, "positions", collections.PairKeyCodec(collections.BytesKey, collections.Uint64Key), types.CollValue[types.Position]("position")),
		ReferralCodes:    collections.NewMap(builder, types.ReferralCodePrefix, "referral_codes", collections.StringKey, collections.StringValue),
		Stats:            collections.NewMap(builder, types.StatsPrefix, "stats", collections.StringKey, types.CollValue[types.VaultStats]("vault_stats")),
	}

	_, err := builder.Build()
	if err != nil {
		panic(err)
	}

	return keeper
}

// SetBankKeeper overwrites the token custodian used by this module.
func (k *Keeper) SetBankKeeper(bank types.BankKeeper) {
	k.bank = bank
}

// GetAuthority returns the admin authority address of the module.
func (k *Keeper) GetAuthority() string {
	return k.authority
}

// GetPaused reports whether the ledger is paused. An unset flag means
// unpaused.
func (k *Keeper) GetPaused(ctx context.Context) (bool, error) {
	paused, err := k.Paused.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	return paused, nil
}

// reentrancyGuard rejects nested entry into a guarded operation. Operations
// are totally ordered by the host, so a plain flag suffices; the guard exists
// solely to stop the untrusted custodian from re-entering mid-operation.
type reentrancyGuard struct {
	entered bool
}

func (g *reentrancyGuard) enter() error {
	if g.entered {
		return types.ErrReentrantCall
	}
	g.entered = true
	return nil
}

func (g *reentrancyGuard) exit() {
	g.entered = false
}
