package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is enables errors.Is() comparison for NotFoundError
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// InvalidIdentifierError is returned when a string destined to become a
// table or column name fails the identifier allow-list.
type InvalidIdentifierError struct {
	Identifier string
	Reason     string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid identifier %q: %s", e.Identifier, e.Reason)
}

// AuthenticationError represents authentication-related errors
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// AuthorizationError represents authorization-related errors
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// ConfigurationError represents configuration-related errors
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// StoreErrorKind classifies failures coming from the relational store.
type StoreErrorKind int

const (
	StoreUnknown StoreErrorKind = iota
	StoreTransient
	StorePoolExhausted
	StoreProvisioningFailed
)

func (k StoreErrorKind) String() string {
	switch k {
	case StoreTransient:
		return "transient store error"
	case StorePoolExhausted:
		return "connection pool exhausted"
	case StoreProvisioningFailed:
		return "tenant provisioning failed"
	default:
		return "unknown store error"
	}
}

// StoreError wraps a driver error with its classification. The wrapped
// error is for logs only and must not be sent to clients.
type StoreError struct {
	Kind StoreErrorKind
	Op   string
	Err  error
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Is matches any StoreError of the same kind.
func (e *StoreError) Is(target error) bool {
	t, ok := target.(*StoreError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Entity Not Found Errors
var (
	ErrUserNotFound   = &NotFoundError{Entity: "user"}
	ErrTicketNotFound = &NotFoundError{Entity: "repair ticket"}
	ErrTenantNotFound = &NotFoundError{Entity: "tenant"}
)

// Tenant isolation errors
var (
	ErrInvalidTenantID    = &ValidationError{Field: "tenant_id", Message: "must be a UUID-shaped identifier"}
	ErrTenantAccessDenied = &AuthorizationError{Message: "access to the requested tenant is not permitted"}
	ErrUserHasNoTenant    = &AuthorizationError{Message: "user is not assigned to any tenant"}
	ErrInvalidRole        = errors.New("invalid role")
)

// Store error kinds, usable as errors.Is targets
var (
	ErrTransientStore     = &StoreError{Kind: StoreTransient}
	ErrPoolExhausted      = &StoreError{Kind: StorePoolExhausted}
	ErrProvisioningFailed = &StoreError{Kind: StoreProvisioningFailed}
	ErrUnknownStore       = &StoreError{Kind: StoreUnknown}
)

// Business Logic Errors
var (
	ErrInvalidStatus           = errors.New("invalid status")
	ErrInvalidPaginationParams = errors.New("invalid pagination parameters")
)

// Authentication Errors
var (
	ErrMissingUserContext = &AuthenticationError{Message: "user id not found in context"}
)

// Helper Functions

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsInvalidIdentifier checks if an error is an InvalidIdentifierError
func IsInvalidIdentifier(err error) bool {
	var identErr *InvalidIdentifierError
	return errors.As(err, &identErr)
}

// IsAuthentication checks if an error is an AuthenticationError
func IsAuthentication(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

// IsAuthorization checks if an error is an AuthorizationError
func IsAuthorization(err error) bool {
	var authzErr *AuthorizationError
	return errors.As(err, &authzErr)
}

// IsConfiguration checks if an error is a ConfigurationError
func IsConfiguration(err error) bool {
	var configErr *ConfigurationError
	return errors.As(err, &configErr)
}

// IsTransient reports whether err is a retryable store error
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransientStore)
}

// IsPoolExhausted reports whether err is a pool acquisition timeout
func IsPoolExhausted(err error) bool {
	return errors.Is(err, ErrPoolExhausted)
}

// IsProvisioningFailed reports whether tenant schema creation failed
func IsProvisioningFailed(err error) bool {
	return errors.Is(err, ErrProvisioningFailed)
}

// NewNotFoundError creates a new NotFoundError for a custom entity
func NewNotFoundError(entity string) error {
	return &NotFoundError{Entity: entity}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewInvalidIdentifierError creates a new InvalidIdentifierError
func NewInvalidIdentifierError(identifier, reason string) error {
	return &InvalidIdentifierError{Identifier: identifier, Reason: reason}
}

// NewAuthenticationError creates a new AuthenticationError
func NewAuthenticationError(message string) error {
	return &AuthenticationError{Message: message}
}

// NewAuthorizationError creates a new AuthorizationError
func NewAuthorizationError(message string) error {
	return &AuthorizationError{Message: message}
}

// NewConfigurationError creates a new ConfigurationError
func NewConfigurationError(message string) error {
	return &ConfigurationError{Message: message}
}

// NewStoreError wraps err with a store classification
func NewStoreError(kind StoreErrorKind, op string, err error) error {
	return &StoreError{Kind: kind, Op: op, Err: err}
}
