// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package errs

import (
	"errors"

	"github.com/napalu/dispatch/i18n"
	"golang.org/x/text/language"
)

// Exit codes used by ExitCode
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// ClassError attaches an error class (ErrConfig, ErrUsage, ErrBind, ErrVerbosityGrammar)
// to a specific error. Its message is the message of the specific error.
type ClassError struct {
	class i18n.TranslatableError
	err   error
}

// Config marks err as a fatal declaration error
func Config(err error) error {
	return classify(ErrConfig, err)
}

// Usage marks err as a per-invocation routing error
func Usage(err error) error {
	return classify(ErrUsage, err)
}

// Bind marks err as a per-invocation binding error
func Bind(err error) error {
	return classify(ErrBind, err)
}

// Grammar marks err as a malformed quiet value
func Grammar(err error) error {
	return classify(ErrVerbosityGrammar, err)
}

func classify(class i18n.TranslatableError, err error) error {
	if err == nil {
		return nil
	}
	var ce *ClassError
	if errors.As(err, &ce) && ce.class == class {
		return err
	}
	return &ClassError{class: class, err: err}
}

func (e *ClassError) Error() string {
	return e.err.Error()
}

// Unwrap exposes both the class and the specific error to errors.Is / errors.As
func (e *ClassError) Unwrap() []error {
	return []error{e.err, e.class}
}

// Class returns the class sentinel
func (e *ClassError) Class() error {
	return e.class
}

// Localize renders the specific error in lang when it is translatable
func (e *ClassError) Localize(lang language.Tag) string {
	var te i18n.TranslatableError
	if errors.As(e.err, &te) {
		return te.Localize(lang)
	}
	return e.err.Error()
}

// ExitCode maps an error to the conventional process status: 0 on success,
// 2 for usage, bind and quiet-grammar errors, 1 for everything else.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrUsage), errors.Is(err, ErrBind), errors.Is(err, ErrVerbosityGrammar):
		return ExitUsage
	}
	return ExitError
}
