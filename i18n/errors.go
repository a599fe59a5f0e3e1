// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package i18n

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/text/language"
)

// TranslatableError represents an error whose message is looked up by key
type TranslatableError interface {
	error
	Key() string
	Args() []interface{}
	Unwrap() error
	WithArgs(args ...interface{}) TranslatableError
	Wrap(err error) TranslatableError
	Is(target error) bool
	Localize(lang language.Tag) string
}

// MessageProvider resolves a message key to an unformatted message
type MessageProvider interface {
	GetMessage(key string) string
}

// BundleMessageProvider implements MessageProvider using a bundle
type BundleMessageProvider struct {
	bundle *Bundle
}

// NewBundleMessageProvider creates a new provider backed by bundle
func NewBundleMessageProvider(bundle *Bundle) *BundleMessageProvider {
	return &BundleMessageProvider{bundle: bundle}
}

// GetMessage returns the message for key, or the key itself when unknown
func (p *BundleMessageProvider) GetMessage(key string) string {
	if p.bundle == nil {
		return key
	}
	if msg, ok := p.bundle.Message(key); ok {
		return msg
	}
	return key
}

// TrError is a translatable error with optional formatting arguments and a wrapped cause.
// Copies made by WithArgs and Wrap share the sentinel of the error they were derived from,
// so errors.Is matches them against the package-level value.
//
//	err := errs.ErrRequiredParameter.WithArgs("count")
//	errors.Is(err, errs.ErrRequiredParameter) // true
type TrError struct {
	sentinel error
	key      string
	args     []interface{}
	wrapped  error
}

// NewError creates a new translatable error with a key
func NewError(key string) *TrError {
	return &TrError{
		sentinel: errors.New(key),
		key:      key,
	}
}

// Error returns the message in the default language, formatted with args if provided
func (e *TrError) Error() string {
	return e.format(getDefaultProvider().GetMessage(e.key))
}

// Localize returns the message in lang, falling back to the default language
func (e *TrError) Localize(lang language.Tag) string {
	b := Default()
	if !b.HasLanguage(lang) {
		return e.Error()
	}
	msg := b.TL(lang, e.key, e.args...)
	if e.wrapped != nil {
		var te TranslatableError
		if errors.As(e.wrapped, &te) {
			return fmt.Sprintf("%s: %s", msg, te.Localize(lang))
		}
		return fmt.Sprintf("%s: %v", msg, e.wrapped)
	}
	return msg
}

func (e *TrError) format(msg string) string {
	if len(e.args) > 0 {
		msg = fmt.Sprintf(msg, e.args...)
	}
	if e.wrapped != nil {
		return fmt.Sprintf("%s: %v", msg, e.wrapped)
	}
	return msg
}

// WithArgs returns a copy of the error with format arguments
func (e *TrError) WithArgs(args ...interface{}) TranslatableError {
	return &TrError{
		sentinel: e.sentinel,
		key:      e.key,
		args:     args,
		wrapped:  e.wrapped,
	}
}

// Wrap returns a copy of the error wrapping err
func (e *TrError) Wrap(err error) TranslatableError {
	return &TrError{
		sentinel: e.sentinel,
		key:      e.key,
		args:     e.args,
		wrapped:  err,
	}
}

// Is implements errors.Is for comparison with the sentinel error
func (e *TrError) Is(target error) bool {
	if t, ok := target.(*TrError); ok {
		return e.sentinel == t.sentinel
	}
	return target == e.sentinel
}

// Key returns the translation key
func (e *TrError) Key() string {
	return e.key
}

// Args returns the format arguments
func (e *TrError) Args() []interface{} {
	return e.args
}

// Unwrap returns the wrapped error
func (e *TrError) Unwrap() error {
	return e.wrapped
}

var (
	defaultProvider    MessageProvider
	defaultProviderMux sync.RWMutex
)

// SetDefaultMessageProvider replaces the provider used by TrError.Error
func SetDefaultMessageProvider(p MessageProvider) {
	defaultProviderMux.Lock()
	defer defaultProviderMux.Unlock()
	defaultProvider = p
}

func getDefaultProvider() MessageProvider {
	defaultProviderMux.RLock()
	p := defaultProvider
	defaultProviderMux.RUnlock()
	if p != nil {
		return p
	}

	defaultProviderMux.Lock()
	defer defaultProviderMux.Unlock()
	if defaultProvider == nil {
		defaultProvider = NewBundleMessageProvider(Default())
	}
	return defaultProvider
}
