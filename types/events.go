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
	"fmt"

	"cosmossdk.io/math"
)

// The event structs below satisfy the protoiface.MessageV1 contract expected
// by the core event service.

type EventVaultCreated struct {
	Asset       string
	BlockHeight int64
	Timestamp   int64
}

func (e *EventVaultCreated) Reset()         { *e = EventVaultCreated{} }
func (e *EventVaultCreated) String() string { return fmt.Sprintf("EventVaultCreated%+v", *e) }
func (*EventVaultCreated) ProtoMessage()    {}

type EventSharesMinted struct {
	Asset       string
	Holder      string
	Shares      math.Int
	Assets      math.Int
	BlockHeight int64
	Timestamp   int64
}

func (e *EventSharesMinted) Reset()         { *e = EventSharesMinted{} }
func (e *EventSharesMinted) String() string { return fmt.Sprintf("EventSharesMinted%+v", *e) }
func (*EventSharesMinted) ProtoMessage()    {}

type EventSharesBurned struct {
	Asset       string
	Holder      string
	Shares      math.Int
	Assets      math.Int
	BlockHeight int64
	Timestamp   int64
}

func (e *EventSharesBurned) Reset()         { *e = EventSharesBurned{} }
func (e *EventSharesBurned) String() string { return fmt.Sprintf("EventSharesBurned%+v", *e) }
func (*EventSharesBurned) ProtoMessage()    {}

type EventYieldDistributed struct {
	Asset       string
	Amount      math.Int
	BlockHeight int64
	Timestamp   int64
}

func (e *EventYieldDistributed) Reset()         { *e = EventYieldDistributed{} }
func (e *EventYieldDistributed) String() string { return fmt.Sprintf("EventYieldDistributed%+v", *e) }
func (*EventYieldDistributed) ProtoMessage()    {}

type EventDeposit struct {
	Owner       string
	Asset       string
	Amount      math.Int
	Shares      math.Int
	Tier        uint32
	PositionId  uint64
	Referrer    string
	BlockHeight int64
	Timestamp   int64
}

func (e *EventDeposit) Reset()         { *e = EventDeposit{} }
func (e *EventDeposit) String() string { return fmt.Sprintf("EventDeposit%+v", *e) }
func (*EventDeposit) ProtoMessage()    {}

type EventWithdraw struct {
	Owner        string
	Asset        string
	FinalAmount  math.Int
	SharesBurned math.Int
	PositionId   uint64
	Interest     math.Int
	Penalty      math.Int
	BlockHeight  int64
	Timestamp    int64
}

func (e *EventWithdraw) Reset()         { *e = EventWithdraw{} }
func (e *EventWithdraw) String() string { return fmt.Sprintf("EventWithdraw%+v", *e) }
func (*EventWithdraw) ProtoMessage()    {}

type EventTierConfigured struct {
	Tier               uint32
	LockPeriodSeconds  int64
	ApyBasisPoints     int64
	PenaltyBasisPoints int64
	BlockHeight        int64
	Timestamp          int64
}

func (e *EventTierConfigured) Reset()         { *e = EventTierConfigured{} }
func (e *EventTierConfigured) String() string { return fmt.Sprintf("EventTierConfigured%+v", *e) }
func (*EventTierConfigured) ProtoMessage()    {}

type EventTierEnabled struct {
	Tier        uint32
	Enabled     bool
	BlockHeight int64
	Timestamp   int64
}

func (e *EventTierEnabled) Reset()         { *e = EventTierEnabled{} }
func (e *EventTierEnabled) String() string { return fmt.Sprintf("EventTierEnabled%+v", *e) }
func (*EventTierEnabled) ProtoMessage()    {}

type EventAssetSupportChanged struct {
	Asset       string
	Supported   bool
	BlockHeight int64
	Timestamp   int64
}

func (e *EventAssetSupportChanged) Reset() { *e = EventAssetSupportChanged{} }
func (e *EventAssetSupportChanged) String() string {
	return fmt.Sprintf("EventAssetSupportChanged%+v", *e)
}
func (*EventAssetSupportChanged) ProtoMessage() {}

type EventPausedSet struct {
	Paused      bool
	BlockHeight int64
	Timestamp   int64
}

func (e *EventPausedSet) Reset()         { *e = EventPausedSet{} }
func (e *EventPausedSet) String() string { return fmt.Sprintf("EventPausedSet%+v", *e) }
func (*EventPausedSet) ProtoMessage()    {}

type EventReferralRegistered struct {
	Code        string
	Referrer    string
	BlockHeight int64
	Timestamp   int64
}

func (e *EventReferralRegistered) Reset() { *e = EventReferralRegistered{} }
func (e *EventReferralRegistered) String() string {
	return fmt.Sprintf("EventReferralRegistered%+v", *e)
}
func (*EventReferralRegistered) ProtoMessage() {}

type EventEmergencyWithdraw struct {
	Asset       string
	Amount      math.Int
	Recipient   string
	BlockHeight int64
	Timestamp   int64
}

func (e *EventEmergencyWithdraw) Reset() { *e = EventEmergencyWithdraw{} }
func (e *EventEmergencyWithdraw) String() string {
	return fmt.Sprintf("EventEmergencyWithdraw%+v", *e)
}
func (*EventEmergencyWithdraw) ProtoMessage() {}
