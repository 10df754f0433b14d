package domain

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidAllocationInput = errors.New("invalid allocation input")

// MaxAllocationTotal bounds the total an allocation may split.
const MaxAllocationTotal = math.MaxInt32

var (
	ErrNoAllocationPages = fmt.Errorf("%w: no pages to allocate", ErrInvalidAllocationInput)
	ErrNonPositiveTotal  = fmt.Errorf("%w: total must be positive", ErrInvalidAllocationInput)
	ErrTotalTooLarge     = fmt.Errorf("%w: total exceeds %d", ErrInvalidAllocationInput, MaxAllocationTotal)
	ErrZeroTotalWeight   = fmt.Errorf("%w: weights sum to zero", ErrInvalidAllocationInput)
	ErrNegativeWeight    = fmt.Errorf("%w: weight must be a non-negative number", ErrInvalidAllocationInput)
	ErrWeightOverflow    = fmt.Errorf("%w: weights sum to infinity", ErrInvalidAllocationInput)
)

var (
	ErrNoActivePages   = errors.New("no active sales pages to route to")
	ErrMalformedBucket = errors.New("malformed bucket token")
	ErrRuleNotFound    = errors.New("distribution rule not found")
	ErrInvalidRule     = errors.New("invalid distribution rule")
)

var ErrForbidden = errors.New("operator is not allowed to perform this action")

var (
	ErrDuplicateLead     = errors.New("lead with this phone number is already active on the sales page")
	ErrLeadNotFound      = errors.New("lead not found")
	ErrNoOwnerAssigned   = errors.New("sales page has no assigned owner")
	ErrWithdrawForbidden = fmt.Errorf("%w: withdrawing leads requires the ADMIN role", ErrForbidden)
	ErrInvalidLead       = errors.New("invalid lead")
	ErrOwnerNotFound     = errors.New("page owner not found")
	ErrInvalidOwner      = errors.New("invalid page owner")
)
