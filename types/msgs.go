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

// MsgServer is the state-mutating surface of the savings ledger.
type MsgServer interface {
	Deposit(ctx context.Context, msg *MsgDeposit) (*MsgDepositResponse, error)
	Withdraw(ctx context.Context, msg *MsgWithdraw) (*MsgWithdrawResponse, error)

	SetPaused(ctx context.Context, msg *MsgSetPaused) (*MsgSetPausedResponse, error)
	SetSupportedAsset(ctx context.Context, msg *MsgSetSupportedAsset) (*MsgSetSupportedAssetResponse, error)
	ConfigureTier(ctx context.Context, msg *MsgConfigureTier) (*MsgConfigureTierResponse, error)
	SetTierEnabled(ctx context.Context, msg *MsgSetTierEnabled) (*MsgSetTierEnabledResponse, error)
	RegisterReferralCode(ctx context.Context, msg *MsgRegisterReferralCode) (*MsgRegisterReferralCodeResponse, error)
	EmergencyWithdraw(ctx context.Context, msg *MsgEmergencyWithdraw) (*MsgEmergencyWithdrawResponse, error)
}

type MsgDeposit struct {
	Depositor    string
	Asset        string
	Amount       math.Int
	Tier         uint32
	ReferralCode string
}

type MsgDepositResponse struct {
	PositionId uint64
	Shares     math.Int
	LockEndsAt int64
}

// MsgWithdraw burns shares out of one position. A nil or zero Shares field
// means "withdraw everything".
type MsgWithdraw struct {
	Owner      string
	PositionId uint64
	Shares     math.Int
}

type MsgWithdrawResponse struct {
	Amount       math.Int
	SharesBurned math.Int
	Interest     math.Int
	Penalty      math.Int
}

type MsgSetPaused struct {
	Authority string
	Paused    bool
}

type MsgSetPausedResponse struct{}

type MsgSetSupportedAsset struct {
	Authority string
	Asset     string
	Supported bool
}

type MsgSetSupportedAssetResponse struct{}

type MsgConfigureTier struct {
	Authority          string
	Tier               uint32
	LockPeriodSeconds  int64
	ApyBasisPoints     int64
	PenaltyBasisPoints int64
}

type MsgConfigureTierResponse struct{}

type MsgSetTierEnabled struct {
	Authority string
	Tier      uint32
	Enabled   bool
}

type MsgSetTierEnabledResponse struct{}

type MsgRegisterReferralCode struct {
	Authority string
	Code      string
	Referrer  string
}

type MsgRegisterReferralCodeResponse struct{}

// MsgEmergencyWithdraw sweeps custody funds while the ledger is paused. It
// deliberately bypasses share accounting; it exists as a rescue path only.
type MsgEmergencyWithdraw struct {
	Authority string
	Asset     string
	Amount    math.Int
	Recipient string
}

type MsgEmergencyWithdrawResponse struct{}
