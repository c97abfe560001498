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

package api

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ligato/sai-agent/api/sai"
)

var (
	// ErrClosedMeta is returned when an operation is called after Close.
	ErrClosedMeta = errors.New("meta layer was closed")

	// ErrMissingBackend is returned from Init when no backend was supplied.
	ErrMissingBackend = errors.New("backend is not configured")
)

// ErrorKind classifies a rejected operation.
type ErrorKind int

const (
	// InvalidArgument covers malformed requests: empty lists, duplicate
	// attributes, bad modes, attributes supplied where not allowed.
	InvalidArgument ErrorKind = iota + 1
	// UnknownAttribute is an attribute ID not defined for the object type.
	UnknownAttribute
	// MissingMandatoryAttribute is a mandatory attribute absent on create.
	MissingMandatoryAttribute
	// ReadOnlyViolation is an attempt to supply a read-only attribute.
	ReadOnlyViolation
	// ImmutableAttributeViolation is an attempt to set a create-only attribute.
	ImmutableAttributeViolation
	// InvalidEnumValue is a value outside of the enumeration.
	InvalidEnumValue
	// InvalidListShape is a list whose count does not match its buffer.
	InvalidListShape
	// InvalidAttributeValue is a value of a wrong kind or out of range.
	InvalidAttributeValue
	// DanglingReference is a reference to an object which does not exist.
	DanglingReference
	// WrongReferencedType is a reference to an object of disallowed type.
	WrongReferencedType
	// DuplicateKey is a create colliding with an object with equal KEY attributes.
	DuplicateKey
	// NotFound is an operation on an object which does not exist.
	NotFound
	// AlreadyExists is a create of an entry which already exists.
	AlreadyExists
	// StillReferenced is a remove of an object referenced by others.
	StillReferenced
	// NotSupported is an operation not supported for the object type.
	NotSupported
	// NotImplemented is an operation the engine does not implement.
	NotImplemented
	// BufferTooSmall is a get whose caller-supplied list is too short.
	BufferTooSmall
	// BackendFailure is a failure reported by the backend.
	BackendFailure
	// NotExecuted is a bulk element skipped after an earlier failure.
	NotExecuted
)

var errorKindNames = map[ErrorKind]string{
	InvalidArgument:             "InvalidArgument",
	UnknownAttribute:            "UnknownAttribute",
	MissingMandatoryAttribute:   "MissingMandatoryAttribute",
	ReadOnlyViolation:           "ReadOnlyViolation",
	ImmutableAttributeViolation: "ImmutableAttributeViolation",
	InvalidEnumValue:            "InvalidEnumValue",
	InvalidListShape:            "InvalidListShape",
	InvalidAttributeValue:       "InvalidAttributeValue",
	DanglingReference:           "DanglingReference",
	WrongReferencedType:         "WrongReferencedType",
	DuplicateKey:                "DuplicateKey",
	NotFound:                    "NotFound",
	AlreadyExists:               "AlreadyExists",
	StillReferenced:             "StillReferenced",
	NotSupported:                "NotSupported",
	NotImplemented:              "NotImplemented",
	BufferTooSmall:              "BufferTooSmall",
	BackendFailure:              "BackendFailure",
	NotExecuted:                 "NotExecuted",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return "ErrorKind(" + strconv.Itoa(int(k)) + ")"
}

// ParseErrorKind converts error kind name into ErrorKind.
func ParseErrorKind(name string) (ErrorKind, bool) {
	for k, n := range errorKindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// Status maps the error kind to the closest SAI status code.
func (k ErrorKind) Status() sai.Status {
	switch k {
	case InvalidArgument, InvalidListShape:
		return sai.StatusInvalidParameter
	case UnknownAttribute:
		return sai.StatusUnknownAttribute
	case MissingMandatoryAttribute:
		return sai.StatusMandatoryAttributeMissing
	case ReadOnlyViolation, ImmutableAttributeViolation:
		return sai.StatusInvalidAttribute
	case InvalidEnumValue, InvalidAttributeValue:
		return sai.StatusInvalidAttrValue
	case DanglingReference, WrongReferencedType:
		return sai.StatusInvalidObjectID
	case DuplicateKey, AlreadyExists:
		return sai.StatusItemAlreadyExists
	case NotFound:
		return sai.StatusItemNotFound
	case StillReferenced:
		return sai.StatusObjectInUse
	case NotSupported:
		return sai.StatusNotSupported
	case NotImplemented:
		return sai.StatusNotImplemented
	case BufferTooSmall:
		return sai.StatusBufferOverflow
	case NotExecuted:
		return sai.StatusNotExecuted
	}
	return sai.StatusFailure
}

// Error is returned for every rejected operation.
type Error struct {
	Kind       ErrorKind
	ObjectType sai.ObjectType
	// Key is the canonical form of the object key, if known.
	Key string
	// Attr is the name of the offending attribute, if any.
	Attr  string
	Msg   string
	Cause error
}

// NewError returns error of the given kind.
func NewError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// WithObject sets the object the error relates to.
func (e *Error) WithObject(objectType sai.ObjectType, key sai.ObjectKey) *Error {
	e.ObjectType = objectType
	if key != nil {
		e.Key = key.String()
	}
	return e
}

// WithAttr sets the offending attribute name.
func (e *Error) WithAttr(name string) *Error {
	e.Attr = name
	return e
}

// WithCause sets the underlying error.
func (e *Error) WithCause(err error) *Error {
	e.Cause = err
	return e
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.String())
	sb.WriteString(": ")
	sb.WriteString(e.Msg)
	var details []string
	if e.ObjectType != sai.ObjectTypeNull {
		details = append(details, "object-type="+e.ObjectType.String())
	}
	if e.Key != "" {
		details = append(details, "key="+e.Key)
	}
	if e.Attr != "" {
		details = append(details, "attr="+e.Attr)
	}
	if len(details) > 0 {
		sb.WriteString(" (")
		sb.WriteString(strings.Join(details, ", "))
		sb.WriteString(")")
	}
	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}
	return sb.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// KindOf returns the kind of the error, or zero if err is not *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsKind returns true if err is *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

// StatusOf maps error to SAI status. Backend failures report
// the status returned by the backend when available.
func StatusOf(err error) sai.Status {
	if err == nil {
		return sai.StatusSuccess
	}
	var e *Error
	if errors.As(err, &e) {
		var status sai.Status
		if e.Kind == BackendFailure && errors.As(e.Cause, &status) {
			return status
		}
		return e.Kind.Status()
	}
	var status sai.Status
	if errors.As(err, &status) {
		return status
	}
	return sai.StatusFailure
}

// BulkError summarizes a bulk operation with failed elements.
// Per-element results are returned separately.
type BulkError struct {
	Total       int
	Failed      int
	NotExecuted int
}

func (e *BulkError) Error() string {
	return fmt.Sprintf("bulk operation failed: %d of %d elements failed, %d not executed",
		e.Failed, e.Total, e.NotExecuted)
}

// NewBulkError returns nil if all statuses are nil, BulkError otherwise.
func NewBulkError(statuses []error) error {
	be := &BulkError{Total: len(statuses)}
	for _, err := range statuses {
		switch {
		case err == nil:
		case IsKind(err, NotExecuted):
			be.NotExecuted++
		default:
			be.Failed++
		}
	}
	if be.Failed == 0 && be.NotExecuted == 0 {
		return nil
	}
	return be
}
