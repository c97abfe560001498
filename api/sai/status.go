// Copyright (c) 2018 Cisco and/or its affiliates.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at:
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sai

import (
	"fmt"
	"strconv"
)

// Status is a SAI status code. Every non-success status is also an error,
// which is how backends report failures.
type Status int32

const (
	StatusSuccess                   Status = 0
	StatusFailure                   Status = -1
	StatusNotSupported              Status = -2
	StatusNoMemory                  Status = -3
	StatusInsufficientResources     Status = -4
	StatusInvalidParameter          Status = -5
	StatusItemAlreadyExists         Status = -6
	StatusItemNotFound              Status = -7
	StatusBufferOverflow            Status = -8
	StatusInvalidPortNumber         Status = -9
	StatusInvalidPortMember         Status = -10
	StatusInvalidVlanID             Status = -11
	StatusUninitialized             Status = -12
	StatusTableFull                 Status = -13
	StatusMandatoryAttributeMissing Status = -14
	StatusNotImplemented            Status = -15
	StatusAddrNotFound              Status = -16
	StatusObjectInUse               Status = -17
	StatusInvalidObjectType         Status = -18
	StatusInvalidObjectID           Status = -19
	StatusNotExecuted               Status = -23
	StatusInvalidAttribute          Status = -0x10000
	StatusInvalidAttrValue          Status = -0x20000
	StatusAttrNotImplemented        Status = -0x30000
	StatusUnknownAttribute          Status = -0x40000
	StatusAttrNotSupported          Status = -0x50000
)

var statusNames = map[Status]string{
	StatusSuccess:                   "SAI_STATUS_SUCCESS",
	StatusFailure:                   "SAI_STATUS_FAILURE",
	StatusNotSupported:              "SAI_STATUS_NOT_SUPPORTED",
	StatusNoMemory:                  "SAI_STATUS_NO_MEMORY",
	StatusInsufficientResources:     "SAI_STATUS_INSUFFICIENT_RESOURCES",
	StatusInvalidParameter:          "SAI_STATUS_INVALID_PARAMETER",
	StatusItemAlreadyExists:         "SAI_STATUS_ITEM_ALREADY_EXISTS",
	StatusItemNotFound:              "SAI_STATUS_ITEM_NOT_FOUND",
	StatusBufferOverflow:            "SAI_STATUS_BUFFER_OVERFLOW",
	StatusInvalidPortNumber:         "SAI_STATUS_INVALID_PORT_NUMBER",
	StatusInvalidPortMember:         "SAI_STATUS_INVALID_PORT_MEMBER",
	StatusInvalidVlanID:             "SAI_STATUS_INVALID_VLAN_ID",
	StatusUninitialized:             "SAI_STATUS_UNINITIALIZED",
	StatusTableFull:                 "SAI_STATUS_TABLE_FULL",
	StatusMandatoryAttributeMissing: "SAI_STATUS_MANDATORY_ATTRIBUTE_MISSING",
	StatusNotImplemented:            "SAI_STATUS_NOT_IMPLEMENTED",
	StatusAddrNotFound:              "SAI_STATUS_ADDR_NOT_FOUND",
	StatusObjectInUse:               "SAI_STATUS_OBJECT_IN_USE",
	StatusInvalidObjectType:         "SAI_STATUS_INVALID_OBJECT_TYPE",
	StatusInvalidObjectID:           "SAI_STATUS_INVALID_OBJECT_ID",
	StatusNotExecuted:               "SAI_STATUS_NOT_EXECUTED",
	StatusInvalidAttribute:          "SAI_STATUS_INVALID_ATTRIBUTE_0",
	StatusInvalidAttrValue:          "SAI_STATUS_INVALID_ATTR_VALUE_0",
	StatusAttrNotImplemented:        "SAI_STATUS_ATTR_NOT_IMPLEMENTED_0",
	StatusUnknownAttribute:          "SAI_STATUS_UNKNOWN_ATTRIBUTE_0",
	StatusAttrNotSupported:          "SAI_STATUS_ATTR_NOT_SUPPORTED_0",
}

// String returns the SAI name of the status.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "SAI_STATUS_" + strconv.Itoa(int(s))
}

// Error implements error.
func (s Status) Error() string {
	return fmt.Sprintf("%s (%d)", s.String(), int32(s))
}

// ParseStatus converts SAI status name into Status.
func ParseStatus(name string) (Status, bool) {
	for s, n := range statusNames {
		if n == name {
			return s, true
		}
	}
	return StatusSuccess, false
}
