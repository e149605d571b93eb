// Package apierr defines the core's error taxonomy and its mapping onto
// gRPC status codes, kept separate from the transport layer so the service
// packages stay free of any RPC import.
package apierr

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/cuemby/cmfanout/pkg/token"
)

// ValidationError marks a request missing a required field.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// BusError marks a broadcast publish that could not be delivered to any
// live consumer.
type BusError struct {
	Reason string
}

func (e *BusError) Error() string {
	return fmt.Sprintf("broadcast bus: %s", e.Reason)
}

// SinkError wraps a Push Sink failure.
type SinkError struct {
	Err error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("push sink: %v", e.Err)
}

func (e *SinkError) Unwrap() error {
	return e.Err
}

// ToStatus maps a service-layer error to the gRPC status it should be
// surfaced as. A nil err maps to nil.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		return status.Error(codes.InvalidArgument, ve.Error())
	}

	var npe *token.NotPresentError
	if errors.As(err, &npe) {
		// Preserved from the source behavior: an unknown key on update is
		// InvalidArgument, not NotFound.
		return status.Error(codes.InvalidArgument, npe.Error())
	}

	var be *BusError
	if errors.As(err, &be) {
		return status.Error(codes.Internal, be.Error())
	}

	var se *SinkError
	if errors.As(err, &se) {
		return status.Error(codes.Internal, se.Error())
	}

	return status.Error(codes.Internal, err.Error())
}
