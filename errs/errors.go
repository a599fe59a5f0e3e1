// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

package errs

import "github.com/napalu/dispatch/i18n"

// Error classes. Every error returned across the BuildTree / Resolve / Bind boundary
// matches exactly one of these with errors.Is.
var (
	ErrConfig           = i18n.NewError(ErrConfigKey)
	ErrUsage            = i18n.NewError(ErrUsageKey)
	ErrBind             = i18n.NewError(ErrBindKey)
	ErrVerbosityGrammar = i18n.NewError(ErrVerbosityGrammarKey)
)

// Declaration and tree construction errors
var (
	ErrEmptyTree                  = i18n.NewError(ErrEmptyTreeKey)
	ErrDuplicatePath              = i18n.NewError(ErrDuplicatePathKey)
	ErrEmptySegment               = i18n.NewError(ErrEmptySegmentKey)
	ErrRoutingNodeWithoutChildren = i18n.NewError(ErrRoutingNodeWithoutChildrenKey)
	ErrInheritanceCycle           = i18n.NewError(ErrInheritanceCycleKey)
	ErrSchemaConflict             = i18n.NewError(ErrSchemaConflictKey)
	ErrInvalidParameter           = i18n.NewError(ErrInvalidParameterKey)
	ErrPositionalOrder            = i18n.NewError(ErrPositionalOrderKey)
	ErrDuplicateName              = i18n.NewError(ErrDuplicateNameKey)
	ErrNilHandlerFunc             = i18n.NewError(ErrNilHandlerFuncKey)
)

// Resolution errors
var (
	ErrCommandNotFound          = i18n.NewError(ErrCommandNotFoundKey)
	ErrCommandNotFoundSuggest   = i18n.NewError(ErrCommandNotFoundSuggestKey)
	ErrCommandExpectsSubcommand = i18n.NewError(ErrCommandExpectsSubcommandKey)
)

// Binding errors
var (
	ErrRequiredParameter         = i18n.NewError(ErrRequiredParameterKey)
	ErrFlagExpectsValue          = i18n.NewError(ErrFlagExpectsValueKey)
	ErrUnexpectedArgument        = i18n.NewError(ErrUnexpectedArgumentKey)
	ErrUnknownKeyword            = i18n.NewError(ErrUnknownKeywordKey)
	ErrUnknownKeywordSuggest     = i18n.NewError(ErrUnknownKeywordSuggestKey)
	ErrConflictingValues         = i18n.NewError(ErrConflictingValuesKey)
	ErrPositionalKeywordConflict = i18n.NewError(ErrPositionalKeywordConflictKey)
	ErrInvalidValue              = i18n.NewError(ErrInvalidValueKey)
	ErrInvalidChoice             = i18n.NewError(ErrInvalidChoiceKey)
)

// Value conversion errors
var (
	ErrParseInt        = i18n.NewError(ErrParseIntKey)
	ErrParseFloat      = i18n.NewError(ErrParseFloatKey)
	ErrParseBool       = i18n.NewError(ErrParseBoolKey)
	ErrParseTime       = i18n.NewError(ErrParseTimeKey)
	ErrParseDuration   = i18n.NewError(ErrParseDurationKey)
	ErrParseOverflow   = i18n.NewError(ErrParseOverflowKey)
	ErrUnsupportedType = i18n.NewError(ErrUnsupportedTypeKey)
)

// Quiet mini-language errors
var (
	ErrUnknownLevel  = i18n.NewError(ErrUnknownLevelKey)
	ErrEmptyModifier = i18n.NewError(ErrEmptyModifierKey)
	ErrNegativeCount = i18n.NewError(ErrNegativeCountKey)
)

// Collaborator errors
var (
	ErrManifestFormat     = i18n.NewError(ErrManifestFormatKey)
	ErrManifestDecode     = i18n.NewError(ErrManifestDecodeKey)
	ErrManifestHandler    = i18n.NewError(ErrManifestHandlerKey)
	ErrManifestReference  = i18n.NewError(ErrManifestReferenceKey)
	ErrUnsupportedShell   = i18n.NewError(ErrUnsupportedShellKey)
	ErrNoCompletionScript = i18n.NewError(ErrNoCompletionScriptKey)
	ErrConfiguringEngine  = i18n.NewError(ErrConfiguringEngineKey)
)
