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

package mocks

import (
	"context"
	"time"

	"cosmossdk.io/core/header"
	"cosmossdk.io/log"
	"github.com/cosmos/cosmos-sdk/codec/address"

	"github.com/Enricrypto/vault-forge-crypto-bank/keeper"
	"github.com/Enricrypto/vault-forge-crypto-bank/types"
	"github.com/Enricrypto/vault-forge-crypto-bank/utils"
)

// Host bundles the mocked host services a keeper runs against, exposed so
// tests can advance the clock, inspect events, and checkpoint state.
type Host struct {
	Store     *StoreService
	Header    *HeaderService
	Events    *EventService
	Authority utils.Account
}

// VaultBankKeeper wires a keeper against fully mocked host services. The
// header clock starts at a fixed date so interest math in tests is
// deterministic.
func VaultBankKeeper(bank *BankKeeper) (*keeper.Keeper, *Host, context.Context) {
	host := &Host{
		Store: NewStoreService(),
		Header: &HeaderService{Info: header.Info{
			Height: 1,
			Time:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		}},
		Events:    &EventService{},
		Authority: utils.TestAccount(),
	}

	k := keeper.NewKeeper(
		host.Authority.Address,
		types.ModuleAddress,
		host.Store,
		log.NewNopLogger(),
		host.Header,
		host.Events,
		address.NewBech32Codec("cosmos"),
		bank,
	)

	return k, host, context.Background()
}
