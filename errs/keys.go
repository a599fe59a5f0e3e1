// Copyright 2021-2024, Florent Heyworth. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

// Package errs contains the translation keys and sentinel errors of the dispatch engine.
package errs

const (
	prefixKey = "dispatch"
)

// Key prefixes
const (
	ErrorPrefixKey    = prefixKey + ".error"
	ClassPrefixKey    = ErrorPrefixKey + ".class"
	ParseErrorPathKey = ErrorPrefixKey + ".parse"
	MessagePrefixKey  = prefixKey + ".msg"
)

// Error classes
const (
	ErrConfigKey           = ClassPrefixKey + ".config"
	ErrUsageKey            = ClassPrefixKey + ".usage"
	ErrBindKey             = ClassPrefixKey + ".bind"
	ErrVerbosityGrammarKey = ClassPrefixKey + ".verbosity"
)

// Declaration and tree construction
const (
	ErrEmptyTreeKey                  = ErrorPrefixKey + ".empty_tree"
	ErrDuplicatePathKey              = ErrorPrefixKey + ".duplicate_path"
	ErrEmptySegmentKey               = ErrorPrefixKey + ".empty_segment"
	ErrRoutingNodeWithoutChildrenKey = ErrorPrefixKey + ".routing_node_without_children"
	ErrInheritanceCycleKey           = ErrorPrefixKey + ".inheritance_cycle"
	ErrSchemaConflictKey             = ErrorPrefixKey + ".schema_conflict"
	ErrInvalidParameterKey           = ErrorPrefixKey + ".invalid_parameter"
	ErrPositionalOrderKey            = ErrorPrefixKey + ".positional_order"
	ErrDuplicateNameKey              = ErrorPrefixKey + ".duplicate_name"
	ErrNilHandlerFuncKey             = ErrorPrefixKey + ".nil_handler_func"
)

// Resolution
const (
	ErrCommandNotFoundKey          = ErrorPrefixKey + ".command_not_found"
	ErrCommandNotFoundSuggestKey   = ErrorPrefixKey + ".command_not_found_suggest"
	ErrCommandExpectsSubcommandKey = ErrorPrefixKey + ".command_expects_subcommand"
)

// Binding
const (
	ErrRequiredParameterKey         = ErrorPrefixKey + ".required_parameter"
	ErrFlagExpectsValueKey          = ErrorPrefixKey + ".flag_expects_value"
	ErrUnexpectedArgumentKey        = ErrorPrefixKey + ".unexpected_argument"
	ErrUnknownKeywordKey            = ErrorPrefixKey + ".unknown_keyword"
	ErrUnknownKeywordSuggestKey     = ErrorPrefixKey + ".unknown_keyword_suggest"
	ErrConflictingValuesKey         = ErrorPrefixKey + ".conflicting_values"
	ErrPositionalKeywordConflictKey = ErrorPrefixKey + ".positional_keyword_conflict"
	ErrInvalidValueKey              = ErrorPrefixKey + ".invalid_value"
	ErrInvalidChoiceKey             = ErrorPrefixKey + ".invalid_choice"
)

// Value conversion
const (
	ErrParseIntKey        = ParseErrorPathKey + ".int"
	ErrParseFloatKey      = ParseErrorPathKey + ".float"
	ErrParseBoolKey       = ParseErrorPathKey + ".bool"
	ErrParseTimeKey       = ParseErrorPathKey + ".time"
	ErrParseDurationKey   = ParseErrorPathKey + ".duration"
	ErrParseOverflowKey   = ParseErrorPathKey + ".overflow"
	ErrUnsupportedTypeKey = ParseErrorPathKey + ".unsupported_type"
)

// Quiet mini-language
const (
	ErrUnknownLevelKey  = ErrorPrefixKey + ".unknown_level"
	ErrEmptyModifierKey = ErrorPrefixKey + ".empty_modifier"
	ErrNegativeCountKey = ErrorPrefixKey + ".negative_count"
)

// Collaborators
const (
	ErrManifestFormatKey     = ErrorPrefixKey + ".manifest_format"
	ErrManifestDecodeKey     = ErrorPrefixKey + ".manifest_decode"
	ErrManifestHandlerKey    = ErrorPrefixKey + ".manifest_handler"
	ErrManifestReferenceKey  = ErrorPrefixKey + ".manifest_reference"
	ErrUnsupportedShellKey   = ErrorPrefixKey + ".unsupported_shell"
	ErrNoCompletionScriptKey = ErrorPrefixKey + ".no_completion_script"
	ErrConfiguringEngineKey  = ErrorPrefixKey + ".configuring_engine"
)

// Help labels
const (
	MsgUsageKey      = MessagePrefixKey + ".usage"
	MsgCommandsKey   = MessagePrefixKey + ".commands"
	MsgOptionsKey    = MessagePrefixKey + ".options"
	MsgArgumentsKey  = MessagePrefixKey + ".arguments"
	MsgRequiredKey   = MessagePrefixKey + ".required"
	MsgOptionalKey   = MessagePrefixKey + ".optional"
	MsgDefaultsToKey = MessagePrefixKey + ".defaults_to"
	MsgAliasesKey    = MessagePrefixKey + ".aliases"
	MsgVersionKey    = MessagePrefixKey + ".version"
	MsgEnvKey        = MessagePrefixKey + ".env"
)
