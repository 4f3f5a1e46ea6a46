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

package keeper_test

import (
	"context"
	"testing"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Enricrypto/vault-forge-crypto-bank/keeper"
	"github.com/Enricrypto/vault-forge-crypto-bank/types"
	"github.com/Enricrypto/vault-forge-crypto-bank/utils"
	"github.com/Enricrypto/vault-forge-crypto-bank/utils/mocks"
)

const (
	USDC = "uusdc"

	ThirtyDays = 30 * 86_400
)

// ONE is one whole token at 18 decimals.
var ONE = math.NewInt(1_000_000_000_000_000_000)

// setupTest creates a test environment with keeper, servers and bank, with
// the default tier schedule seeded and one supported asset.
func setupTest(t *testing.T) (*keeper.Keeper, types.MsgServer, *mocks.BankKeeper, *mocks.Host, context.Context, utils.Account) {
	bank := &mocks.BankKeeper{
		Balances: make(map[string]sdk.Coins),
	}

	k, host, ctx := mocks.VaultBankKeeper(bank)
	server := keeper.NewMsgServer(k)
	require.NoError(t, k.InitGenesis(ctx))

	_, err := server.SetSupportedAsset(ctx, &types.MsgSetSupportedAsset{
		Authority: host.Authority.Address,
		Asset:     USDC,
		Supported: true,
	})
	require.NoError(t, err)

	// A deep interest reserve so payouts never bounce in tests.
	bank.Fund(types.ModuleAddress, sdk.NewCoin(USDC, ONE.MulRaw(1_000_000)))

	bob := utils.TestAccount()
	return k, server, bank, host, ctx, bob
}

// configureEarlyExitTier writes a 30 day tier at 2% APY with a 50% penalty
// on accrued interest for early exits.
func configureEarlyExitTier(t *testing.T, server types.MsgServer, host *mocks.Host, ctx context.Context) {
	_, err := server.ConfigureTier(ctx, &types.MsgConfigureTier{
		Authority:          host.Authority.Address,
		Tier:               1,
		LockPeriodSeconds:  ThirtyDays,
		ApyBasisPoints:     200,
		PenaltyBasisPoints: 5_000,
	})
	require.NoError(t, err)
}

func TestDepositBasic(t *testing.T) {
	k, server, bank, host, ctx, bob := setupTest(t)

	// ARRANGE: Fund Bob with 1000 tokens.
	bank.Fund(bob.Bytes, sdk.NewCoin(USDC, ONE.MulRaw(1000)))

	// ACT: Bob deposits everything into the 30 day tier.
	resp, err := server.Deposit(ctx, &types.MsgDeposit{
		Depositor: bob.Address,
		Asset:     USDC,
		Amount:    ONE.MulRaw(1000),
		Tier:      1,
	})

	// ASSERT: The deposit succeeds and the opening deposit forfeits the
	// dead shares.
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, uint64(1), resp.PositionId)
	assert.Equal(t, ONE.MulRaw(1000).SubRaw(1000), resp.Shares)
	assert.Equal(t, host.Header.Info.Time.Unix()+ThirtyDays, resp.LockEndsAt)

	// ASSERT: Funds moved into vault custody.
	assert.True(t, bank.Balances[bob.Address].AmountOf(USDC).IsZero())
	assert.Equal(t, ONE.MulRaw(1000), bank.Balances[types.VaultAddress.String()].AmountOf(USDC))

	// ASSERT: The position record matches the deposit.
	position, err := k.GetPosition(ctx, bob.Bytes, 1)
	require.NoError(t, err)
	assert.Equal(t, bob.Address, position.Owner)
	assert.Equal(t, USDC, position.Asset)
	assert.Equal(t, ONE.MulRaw(1000), position.PrincipalAmount)
	assert.Equal(t, ONE.MulRaw(1000).SubRaw(1000), position.Shares)
	assert.Equal(t, uint32(1), position.TierIndex)

	// ASSERT: Dead shares sit with the reserved holder.
	deadBalance, err := k.GetShareBalance(ctx, USDC, types.DeadShareAddress)
	require.NoError(t, err)
	assert.Equal(t, math.NewInt(1000), deadBalance)

	// ASSERT: Stats track the open position.
	stats, err := k.GetStats(ctx, USDC)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), stats.Deposits)
	assert.Equal(t, uint64(1), stats.OpenPositions)

	// ASSERT: The deposit event carries the executed figures.
	var depositEvent *types.EventDeposit
	for _, event := range host.Events.Events {
		if e, ok := event.(*types.EventDeposit); ok {
			depositEvent = e
		}
	}
	require.NotNil(t, depositEvent)
	assert.Equal(t, bob.Address, depositEvent.Owner)
	assert.Equal(t, USDC, depositEvent.Asset)
	assert.Equal(t, ONE.MulRaw(1000), depositEvent.Amount)
	assert.Equal(t, resp.Shares, depositEvent.Shares)
	assert.Equal(t, uint64(1), depositEvent.PositionId)
}

func TestDepositValidation(t *testing.T) {
	_, server, bank, _, ctx, bob := setupTest(t)
	bank.Fund(bob.Bytes, sdk.NewCoin(USDC, ONE.MulRaw(1000)))

	testCases := []struct {
		name string
		msg  *types.MsgDeposit
		err  error
	}{
		{
			"nil message",
			nil,
			types.ErrInvalidRequest,
		},
		{
			"zero amount",
			&types.MsgDeposit{Depositor: bob.Address, Asset: USDC, Amount: math.ZeroInt(), Tier: 0},
			types.ErrInvalidAmount,
		},
		{
			"below minimum",
			&types.MsgDeposit{Depositor: bob.Address, Asset: USDC, Amount: math.NewInt(99), Tier: 0},
			types.ErrInvalidAmount,
		},
		{
			"unsupported asset",
			&types.MsgDeposit{Depositor: bob.Address, Asset: "uatom", Amount: ONE, Tier: 0},
			types.ErrAssetNotSupported,
		},
		{
			"tier out of range",
			&types.MsgDeposit{Depositor: bob.Address, Asset: USDC, Amount: ONE, Tier: 9},
			types.ErrInvalidTier,
		},
		{
			"invalid depositor",
			&types.MsgDeposit{Depositor: "malformed", Asset: USDC, Amount: ONE, Tier: 0},
			types.ErrInvalidRequest,
		},
		{
			"unknown referral code",
			&types.MsgDeposit{Depositor: bob.Address, Asset: USDC, Amount: ONE, Tier: 0, ReferralCode: "GHOST"},
			types.ErrInvalidReferralCode,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := server.Deposit(ctx, tc.msg)
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestDepositDisabledTier(t *testing.T) {
	_, server, bank, host, ctx, bob := setupTest(t)
	bank.Fund(bob.Bytes, sdk.NewCoin(USDC, ONE.MulRaw(1000)))

	// ARRANGE: Disable the 30 day tier.
	_, err := server.SetTierEnabled(ctx, &types.MsgSetTierEnabled{
		Authority: host.Authority.Address,
		Tier:      1,
		Enabled:   false,
	})
	require.NoError(t, err)

	// ACT + ASSERT: New deposits into that tier are refused.
	_, err = server.Deposit(ctx, &types.MsgDeposit{
		Depositor: bob.Address,
		Asset:     USDC,
		Amount:    ONE.MulRaw(1000),
		Tier:      1,
	})
	require.ErrorIs(t, err, types.ErrInvalidTier)
}

func TestDepositReferral(t *testing.T) {
	k, server, bank, host, ctx, bob := setupTest(t)
	alice := utils.TestAccount()
	bank.Fund(bob.Bytes, sdk.NewCoin(USDC, ONE.MulRaw(1000)))

	// ARRANGE: Register Alice's referral code.
	_, err := server.RegisterReferralCode(ctx, &types.MsgRegisterReferralCode{
		Authority: host.Authority.Address,
		Code:      "ALICE",
		Referrer:  alice.Address,
	})
	require.NoError(t, err)

	// ACT: Bob deposits with Alice's code.
	resp, err := server.Deposit(ctx, &types.MsgDeposit{
		Depositor:    bob.Address,
		Asset:        USDC,
		Amount:       ONE.MulRaw(1000),
		Tier:         0,
		ReferralCode: "ALICE",
	})
	require.NoError(t, err)

	// ASSERT: The position carries the resolved referrer.
	position, err := k.GetPosition(ctx, bob.Bytes, resp.PositionId)
	require.NoError(t, err)
	assert.Equal(t, alice.Address, position.Referrer)
}

func TestDepositSelfReferral(t *testing.T) {
	_, server, bank, host, ctx, bob := setupTest(t)
	bank.Fund(bob.Bytes, sdk.NewCoin(USDC, ONE.MulRaw(1000)))

	_, err := server.RegisterReferralCode(ctx, &types.MsgRegisterReferralCode{
		Authority: host.Authority.Address,
		Code:      "BOB",
		Referrer:  bob.Address,
	})
	require.NoError(t, err)

	_, err = server.Deposit(ctx, &types.MsgDeposit{
		Depositor:    bob.Address,
		Asset:        USDC,
		Amount:       ONE.MulRaw(1000),
		Tier:         0,
		ReferralCode: "BOB",
	})
	require.ErrorIs(t, err, types.ErrCannotReferSelf)
}

func TestDepositSequentialPositionIDs(t *testing.T) {
	_, server, bank, _, ctx, bob := setupTest(t)
	bank.Fund(bob.Bytes, sdk.NewCoin(USDC, ONE.MulRaw(3000)))

	for want := uint64(1); want <= 3; want++ {
		resp, err := server.Deposit(ctx, &types.MsgDeposit{
			Depositor: bob.Address,
			Asset:     USDC,
			Amount:    ONE.MulRaw(1000),
			Tier:      0,
		})
		require.NoError(t, err)
		assert.Equal(t, want, resp.PositionId)
	}
}

func TestWithdrawAfterLock(t *testing.T) {
	k, server, bank, host, ctx, bob := setupTest(t)
	configureEarlyExitTier(t, server, host, ctx)
	bank.Fund(bob.Bytes, sdk.NewCoin(USDC, ONE.MulRaw(1000)))

	// ARRANGE: Bob deposits 1000 tokens for 30 days at 2% APY.
	deposit, err := server.Deposit(ctx, &types.MsgDeposit{
		Depositor: bob.Address,
		Asset:     USDC,
		Amount:    ONE.MulRaw(1000),
		Tier:      1,
	})
	require.NoError(t, err)

	// ARRANGE: The full lock period elapses.
	host.Header.Advance(30 * 24 * time.Hour)

	// ACT: Bob withdraws the whole position.
	resp, err := server.Withdraw(ctx, &types.MsgWithdraw{
		Owner:      bob.Address,
		PositionId: deposit.PositionId,
		Shares:     math.ZeroInt(),
	})
	require.NoError(t, err)

	// ASSERT: 30 days of simple interest on 1000e18 at 200 bps, floored.
	interest := math.NewInt(1_643_835_616_438_356_164)
	assets := ONE.MulRaw(1000).SubRaw(1000)
	assert.Equal(t, interest, resp.Interest)
	assert.True(t, resp.Penalty.IsZero())
	assert.Equal(t, deposit.Shares, resp.SharesBurned)
	assert.Equal(t, assets.Add(interest), resp.Amount)
	assert.Equal(t, assets.Add(interest), bank.Balances[bob.Address].AmountOf(USDC))

	// ASSERT: The position is closed but its record survives.
	position, err := k.GetPosition(ctx, bob.Bytes, deposit.PositionId)
	require.NoError(t, err)
	assert.False(t, position.IsOpen())
	assert.True(t, position.PrincipalAmount.IsZero())

	// ASSERT: Only the dead shares remain in the pool.
	vault, found, err := k.GetVault(ctx, USDC)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, math.NewInt(1000), vault.TotalShares)
	assert.Equal(t, math.NewInt(1000), vault.TotalAssets)

	stats, err := k.GetStats(ctx, USDC)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), stats.Withdrawals)
	assert.Equal(t, uint64(0), stats.OpenPositions)
}

func TestWithdrawEarlyPaysPenalty(t *testing.T) {
	k, server, bank, host, ctx, bob := setupTest(t)
	configureEarlyExitTier(t, server, host, ctx)
	bank.Fund(bob.Bytes, sdk.NewCoin(USDC, ONE.MulRaw(1000)))

	deposit, err := server.Deposit(ctx, &types.MsgDeposit{
		Depositor: bob.Address,
		Asset:     USDC,
		Amount:    ONE.MulRaw(1000),
		Tier:      1,
	})
	require.NoError(t, err)

	// ARRANGE: Only half the lock period elapses.
	host.Header.Advance(15 * 24 * time.Hour)

	// ACT: Bob exits early.
	resp, err := server.Withdraw(ctx, &types.MsgWithdraw{
		Owner:      bob.Address,
		PositionId: deposit.PositionId,
		Shares:     math.ZeroInt(),
	})
	require.NoError(t, err)

	// ASSERT: 15 days of interest, half of it forfeited as penalty.
	interest := math.NewInt(821_917_808_219_178_082)
	penalty := math.NewInt(410_958_904_109_589_041)
	assets := ONE.MulRaw(1000).SubRaw(1000)
	assert.Equal(t, interest, resp.Interest)
	assert.Equal(t, penalty, resp.Penalty)
	assert.Equal(t, assets.Add(interest).Sub(penalty), resp.Amount)
	assert.Equal(t, assets.Add(interest).Sub(penalty), bank.Balances[bob.Address].AmountOf(USDC))

	// ASSERT: The penalty stays in the pool as yield on the dead shares.
	vault, found, err := k.GetVault(ctx, USDC)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, math.NewInt(1000), vault.TotalShares)
	assert.Equal(t, math.NewInt(1000).Add(penalty), vault.TotalAssets)

	stats, err := k.GetStats(ctx, USDC)
	require.NoError(t, err)
	assert.Equal(t, penalty, stats.PenaltiesRedistributed)

	// ASSERT: The withdraw and yield events carry the executed figures.
	var withdrawEvent *types.EventWithdraw
	var yieldEvent *types.EventYieldDistributed
	for _, event := range host.Events.Events {
		switch e := event.(type) {
		case *types.EventWithdraw:
			withdrawEvent = e
		case *types.EventYieldDistributed:
			yieldEvent = e
		}
	}
	require.NotNil(t, withdrawEvent)
	assert.Equal(t, bob.Address, withdrawEvent.Owner)
	assert.Equal(t, interest, withdrawEvent.Interest)
	assert.Equal(t, penalty, withdrawEvent.Penalty)
	assert.Equal(t, resp.Amount, withdrawEvent.FinalAmount)
	require.NotNil(t, yieldEvent)
	assert.Equal(t, penalty, yieldEvent.Amount)
}

func TestWithdrawFromDisabledTier(t *testing.T) {
	_, server, bank, host, ctx, bob := setupTest(t)
	configureEarlyExitTier(t, server, host, ctx)
	bank.Fund(bob.Bytes, sdk.NewCoin(USDC, ONE.MulRaw(1000)))

	deposit, err := server.Deposit(ctx, &types.MsgDeposit{
		Depositor: bob.Address,
		Asset:     USDC,
		Amount:    ONE.MulRaw(1000),
		Tier:      1,
	})
	require.NoError(t, err)

	// ARRANGE: The tier is disabled mid-lock.
	host.Header.Advance(15 * 24 * time.Hour)
	_, err = server.SetTierEnabled(ctx, &types.MsgSetTierEnabled{
		Authority: host.Authority.Address,
		Tier:      1,
		Enabled:   false,
	})
	require.NoError(t, err)

	// ACT: Bob can still exit his position.
	resp, err := server.Withdraw(ctx, &types.MsgWithdraw{
		Owner:      bob.Address,
		PositionId: deposit.PositionId,
		Shares:     math.ZeroInt(),
	})
	require.NoError(t, err)

	// ASSERT: A disabled tier accrues no interest and charges no penalty,
	// so the exit returns exactly the ledger proceeds.
	assert.True(t, resp.Interest.IsZero())
	assert.True(t, resp.Penalty.IsZero())
	assert.Equal(t, ONE.MulRaw(1000).SubRaw(1000), resp.Amount)
	assert.Equal(t, ONE.MulRaw(1000).SubRaw(1000), bank.Balances[bob.Address].AmountOf(USDC))
}

func TestWithdrawInterestCappedAtLockEnd(t *testing.T) {
	_, server, bank, host, ctx, bob := setupTest(t)
	configureEarlyExitTier(t, server, host, ctx)
	bank.Fund(bob.Bytes, sdk.NewCoin(USDC, ONE.MulRaw(1000)))

	deposit, err := server.Deposit(ctx, &types.MsgDeposit{
		Depositor: bob.Address,
		Asset:     USDC,
		Amount:    ONE.MulRaw(1000),
		Tier:      1,
	})
	require.NoError(t, err)

	// ARRANGE: Twice the lock period elapses before the withdrawal.
	host.Header.Advance(60 * 24 * time.Hour)

	// ACT: Bob withdraws the whole position.
	resp, err := server.Withdraw(ctx, &types.MsgWithdraw{
		Owner:      bob.Address,
		PositionId: deposit.PositionId,
		Shares:     math.ZeroInt(),
	})
	require.NoError(t, err)

	// ASSERT: Accrual stopped at the lock boundary, so 60 days pays the
	// 30 day figure.
	assert.Equal(t, math.NewInt(1_643_835_616_438_356_164), resp.Interest)
	assert.True(t, resp.Penalty.IsZero())
}

func TestWithdrawPartial(t *testing.T) {
	k, server, bank, host, ctx, bob := setupTest(t)
	configureEarlyExitTier(t, server, host, ctx)
	bank.Fund(bob.Bytes, sdk.NewCoin(USDC, ONE.MulRaw(1000)))

	deposit, err := server.Deposit(ctx, &types.MsgDeposit{
		Depositor: bob.Address,
		Asset:     USDC,
		Amount:    ONE.MulRaw(1000),
		Tier:      1,
	})
	require.NoError(t, err)

	host.Header.Advance(15 * 24 * time.Hour)

	// ACT: Bob withdraws exactly half his shares.
	half := deposit.Shares.QuoRaw(2)
	resp, err := server.Withdraw(ctx, &types.MsgWithdraw{
		Owner:      bob.Address,
		PositionId: deposit.PositionId,
		Shares:     half,
	})
	require.NoError(t, err)

	// ASSERT: Interest and penalty pro-rate to the withdrawn half, each
	// floored independently.
	assert.Equal(t, math.NewInt(410_958_904_109_589_041), resp.Interest)
	assert.Equal(t, math.NewInt(205_479_452_054_794_520), resp.Penalty)
	assert.Equal(t, half, resp.SharesBurned)

	// ASSERT: Principal shrinks in proportion to the burned shares.
	position, err := k.GetPosition(ctx, bob.Bytes, deposit.PositionId)
	require.NoError(t, err)
	assert.Equal(t, deposit.Shares.Sub(half), position.Shares)
	assert.Equal(t, ONE.MulRaw(500), position.PrincipalAmount)
	assert.True(t, position.IsOpen())

	stats, err := k.GetStats(ctx, USDC)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), stats.OpenPositions)
}

func TestWithdrawValidation(t *testing.T) {
	_, server, bank, _, ctx, bob := setupTest(t)
	bank.Fund(bob.Bytes, sdk.NewCoin(USDC, ONE.MulRaw(1000)))

	deposit, err := server.Deposit(ctx, &types.MsgDeposit{
		Depositor: bob.Address,
		Asset:     USDC,
		Amount:    ONE.MulRaw(1000),
		Tier:      0,
	})
	require.NoError(t, err)

	// ACT + ASSERT: Unknown position.
	_, err = server.Withdraw(ctx, &types.MsgWithdraw{
		Owner:      bob.Address,
		PositionId: 42,
		Shares:     math.ZeroInt(),
	})
	require.ErrorIs(t, err, types.ErrPositionNotFound)

	// ACT + ASSERT: More shares than the position holds.
	_, err = server.Withdraw(ctx, &types.MsgWithdraw{
		Owner:      bob.Address,
		PositionId: deposit.PositionId,
		Shares:     deposit.Shares.AddRaw(1),
	})
	require.ErrorIs(t, err, types.ErrInsufficientShares)

	// ACT + ASSERT: A stranger cannot touch Bob's position id space.
	mallory := utils.TestAccount()
	_, err = server.Withdraw(ctx, &types.MsgWithdraw{
		Owner:      mallory.Address,
		PositionId: deposit.PositionId,
		Shares:     math.ZeroInt(),
	})
	require.ErrorIs(t, err, types.ErrPositionNotFound)
}

func TestWithdrawTwiceFails(t *testing.T) {
	_, server, bank, host, ctx, bob := setupTest(t)
	bank.Fund(bob.Bytes, sdk.NewCoin(USDC, ONE.MulRaw(1000)))

	deposit, err := server.Deposit(ctx, &types.MsgDeposit{
		Depositor: bob.Address,
		Asset:     USDC,
		Amount:    ONE.MulRaw(1000),
		Tier:      0,
	})
	require.NoError(t, err)

	host.Header.Advance(time.Hour)

	_, err = server.Withdraw(ctx, &types.MsgWithdraw{
		Owner:      bob.Address,
		PositionId: deposit.PositionId,
		Shares:     math.ZeroInt(),
	})
	require.NoError(t, err)

	// ACT + ASSERT: The closed position has nothing left to withdraw.
	_, err = server.Withdraw(ctx, &types.MsgWithdraw{
		Owner:      bob.Address,
		PositionId: deposit.PositionId,
		Shares:     math.ZeroInt(),
	})
	require.ErrorIs(t, err, types.ErrInsufficientShares)
}

func TestPenaltyRedistribution(t *testing.T) {
	k, server, bank, host, ctx, bob := setupTest(t)
	alice := utils.TestAccount()
	configureEarlyExitTier(t, server, host, ctx)
	bank.Fund(bob.Bytes, sdk.NewCoin(USDC, ONE.MulRaw(1000)))
	bank.Fund(alice.Bytes, sdk.NewCoin(USDC, ONE.MulRaw(1000)))

	// ARRANGE: Both deposit into the same pool.
	bobDeposit, err := server.Deposit(ctx, &types.MsgDeposit{
		Depositor: bob.Address, Asset: USDC, Amount: ONE.MulRaw(1000), Tier: 1,
	})
	require.NoError(t, err)
	aliceDeposit, err := server.Deposit(ctx, &types.MsgDeposit{
		Depositor: alice.Address, Asset: USDC, Amount: ONE.MulRaw(1000), Tier: 1,
	})
	require.NoError(t, err)

	host.Header.Advance(15 * 24 * time.Hour)

	aliceValueBefore, err := k.ConvertToAssets(ctx, USDC, aliceDeposit.Shares)
	require.NoError(t, err)

	// ACT: Bob exits early and forfeits half his interest.
	resp, err := server.Withdraw(ctx, &types.MsgWithdraw{
		Owner:      bob.Address,
		PositionId: bobDeposit.PositionId,
		Shares:     math.ZeroInt(),
	})
	require.NoError(t, err)
	require.True(t, resp.Penalty.IsPositive())

	// ASSERT: Alice's unchanged share count is now worth more.
	aliceValueAfter, err := k.ConvertToAssets(ctx, USDC, aliceDeposit.Shares)
	require.NoError(t, err)
	assert.True(t, aliceValueAfter.GT(aliceValueBefore))
}

func TestWithdrawWhilePaused(t *testing.T) {
	_, server, bank, host, ctx, bob := setupTest(t)
	bank.Fund(bob.Bytes, sdk.NewCoin(USDC, ONE.MulRaw(1000)))

	deposit, err := server.Deposit(ctx, &types.MsgDeposit{
		Depositor: bob.Address, Asset: USDC, Amount: ONE.MulRaw(1000), Tier: 0,
	})
	require.NoError(t, err)

	_, err = server.SetPaused(ctx, &types.MsgSetPaused{
		Authority: host.Authority.Address,
		Paused:    true,
	})
	require.NoError(t, err)

	_, err = server.Deposit(ctx, &types.MsgDeposit{
		Depositor: bob.Address, Asset: USDC, Amount: ONE.MulRaw(100), Tier: 0,
	})
	require.ErrorIs(t, err, types.ErrPaused)

	_, err = server.Withdraw(ctx, &types.MsgWithdraw{
		Owner: bob.Address, PositionId: deposit.PositionId, Shares: math.ZeroInt(),
	})
	require.ErrorIs(t, err, types.ErrPaused)
}

func TestWithdrawReentrancy(t *testing.T) {
	_, server, bank, host, ctx, bob := setupTest(t)
	bank.Fund(bob.Bytes, sdk.NewCoin(USDC, ONE.MulRaw(2000)))

	deposit, err := server.Deposit(ctx, &types.MsgDeposit{
		Depositor: bob.Address, Asset: USDC, Amount: ONE.MulRaw(1000), Tier: 0,
	})
	require.NoError(t, err)

	host.Header.Advance(time.Hour)

	// ARRANGE: The custodian tries to re-enter the ledger mid-withdrawal.
	reentered := false
	bank.Hook = func(hookCtx context.Context, _, _ sdk.AccAddress, _ sdk.Coins) error {
		if reentered {
			return nil
		}
		reentered = true

		_, innerErr := server.Deposit(hookCtx, &types.MsgDeposit{
			Depositor: bob.Address, Asset: USDC, Amount: ONE.MulRaw(1000), Tier: 0,
		})
		require.ErrorIs(t, innerErr, types.ErrReentrantCall)
		return nil
	}

	// ACT + ASSERT: The outer withdrawal itself still succeeds.
	_, err = server.Withdraw(ctx, &types.MsgWithdraw{
		Owner: bob.Address, PositionId: deposit.PositionId, Shares: math.ZeroInt(),
	})
	require.NoError(t, err)
	assert.True(t, reentered)
}

func TestWithdrawTransferFailureRollsBack(t *testing.T) {
	k, server, bank, host, ctx, bob := setupTest(t)
	bank.Fund(bob.Bytes, sdk.NewCoin(USDC, ONE.MulRaw(1000)))

	deposit, err := server.Deposit(ctx, &types.MsgDeposit{
		Depositor: bob.Address, Asset: USDC, Amount: ONE.MulRaw(1000), Tier: 0,
	})
	require.NoError(t, err)

	host.Header.Advance(time.Hour)

	// ARRANGE: The host checkpoints state before applying the operation;
	// the payout transfer then fails.
	host.Store.Checkpoint()
	calls := 0
	bank.Hook = func(context.Context, sdk.AccAddress, sdk.AccAddress, sdk.Coins) error {
		calls++
		if calls == 2 {
			return assert.AnError
		}
		return nil
	}

	// ACT: The withdrawal fails on the payout leg.
	_, err = server.Withdraw(ctx, &types.MsgWithdraw{
		Owner: bob.Address, PositionId: deposit.PositionId, Shares: math.ZeroInt(),
	})
	require.Error(t, err)

	// ASSERT: After the host reverts, the position is whole again.
	host.Store.Revert()
	position, err := k.GetPosition(ctx, bob.Bytes, deposit.PositionId)
	require.NoError(t, err)
	assert.Equal(t, deposit.Shares, position.Shares)
	assert.Equal(t, ONE.MulRaw(1000), position.PrincipalAmount)
}

func TestFlexibleTierAccruesUnbounded(t *testing.T) {
	_, server, bank, host, ctx, bob := setupTest(t)
	bank.Fund(bob.Bytes, sdk.NewCoin(USDC, ONE.MulRaw(1000)))

	deposit, err := server.Deposit(ctx, &types.MsgDeposit{
		Depositor: bob.Address, Asset: USDC, Amount: ONE.MulRaw(1000), Tier: 0,
	})
	require.NoError(t, err)

	// ARRANGE: Two full years pass on the flexible tier at 1% APY.
	host.Header.Advance(2 * 365 * 24 * time.Hour)

	// ACT: Withdraw everything.
	resp, err := server.Withdraw(ctx, &types.MsgWithdraw{
		Owner: bob.Address, PositionId: deposit.PositionId, Shares: math.ZeroInt(),
	})
	require.NoError(t, err)

	// ASSERT: Interest is not capped for the flexible tier: 2 years at
	// 100 bps on 1000 tokens is exactly 20 tokens.
	assert.Equal(t, ONE.MulRaw(20), resp.Interest)
	assert.True(t, resp.Penalty.IsZero())
}
