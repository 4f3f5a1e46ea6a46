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
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/Enricrypto/vault-forge-crypto-bank/types"
)

var _ types.BankKeeper = &BankKeeper{}

// BankKeeper is an in-memory token custodian. The optional Hook runs before
// every transfer so tests can inject failures or re-entrant calls.
type BankKeeper struct {
	Balances map[string]sdk.Coins
	Hook     func(ctx context.Context, from, to sdk.AccAddress, coins sdk.Coins) error
}

func (k *BankKeeper) SendCoins(ctx context.Context, from, to sdk.AccAddress, coins sdk.Coins) error {
	if k.Hook != nil {
		if err := k.Hook(ctx, from, to, coins); err != nil {
			return err
		}
	}

	fromBalance := k.Balances[from.String()]
	newFromBalance, negative := fromBalance.SafeSub(coins...)
	if negative {
		return fmt.Errorf("%s has %s, cannot send %s", from.String(), fromBalance.String(), coins.String())
	}

	k.Balances[from.String()] = newFromBalance
	k.Balances[to.String()] = k.Balances[to.String()].Add(coins...)

	return nil
}

func (k *BankKeeper) GetBalance(_ context.Context, addr sdk.AccAddress, denom string) sdk.Coin {
	return sdk.NewCoin(denom, k.Balances[addr.String()].AmountOf(denom))
}

// Fund credits an account without going through a transfer.
func (k *BankKeeper) Fund(addr sdk.AccAddress, coins ...sdk.Coin) {
	k.Balances[addr.String()] = k.Balances[addr.String()].Add(coins...)
}
