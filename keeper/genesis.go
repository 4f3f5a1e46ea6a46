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

	"github.com/Enricrypto/vault-forge-crypto-bank/types"
)

// InitGenesis seeds the default tier schedule and an unpaused ledger. It is
// idempotent: tiers already present in state are left untouched, so an
// upgrade replay cannot clobber governance-tuned parameters.
func (k *Keeper) InitGenesis(ctx context.Context) error {
	for index, tier := range types.DefaultTiers() {
		exists, err := k.Tiers.Has(ctx, uint32(index))
		if err != nil {
			return errors.Wrap(err, "unable to check tier")
		}
		if exists {
			continue
		}

		if err := k.Tiers.Set(ctx, uint32(index), tier); err != nil {
			return errors.Wrapf(err, "unable to seed tier %d", index)
		}
	}

	exists, err := k.Paused.Has(ctx)
	if err != nil {
		return errors.Wrap(err, "unable to check pause state")
	}
	if !exists {
		if err := k.Paused.Set(ctx, false); err != nil {
			return errors.Wrap(err, "unable to seed pause state")
		}
	}

	return nil
}
