package script

// Category is a named group of PSScriptAnalyzer rules that can be selected
// with one of the --*-only switches.
type Category struct {
	// Name is the CLI-facing name ("security", "style", ...).
	Name string
	// Marker is the value stamped into each surviving finding's
	// RuleCategory property ("Security", "Style", ...).
	Marker string
	// Rules is the fixed allow-list of rule names for this category.
	Rules []string
	// Security marks findings with IsSecurityRule in addition to the
	// category marker.
	Security bool
}

// Categories holds the fixed rule allow-lists, in the order the CLI switches
// are checked. When several switches are set, the first match wins.
var Categories = []Category{
	{
		Name:     "security",
		Marker:   "Security",
		Security: true,
		Rules: []string{
			"PSAvoidUsingPlainTextForPassword",
			"PSAvoidUsingConvertToSecureStringWithPlainText",
			"PSAvoidUsingUserNameAndPasswordParams",
			"PSAvoidUsingComputerNameHardcoded",
			"PSAvoidUsingInvokeExpression",
			"PSAvoidUsingBrokenHashAlgorithms",
			"PSAvoidUsingAllowUnencryptedAuthentication",
			"PSUsePSCredentialType",
		},
	},
	{
		Name:   "style",
		Marker: "Style",
		Rules: []string{
			"PSAlignAssignmentStatement",
			"PSAvoidLongLines",
			"PSAvoidSemicolonsAsLineTerminators",
			"PSAvoidTrailingWhitespace",
			"PSAvoidUsingDoubleQuotesForConstantString",
			"PSPlaceCloseBrace",
			"PSPlaceOpenBrace",
			"PSUseConsistentIndentation",
			"PSUseConsistentWhitespace",
			"PSUseCorrectCasing",
		},
	},
	{
		Name:   "performance",
		Marker: "Performance",
		Rules: []string{
			"PSAvoidUsingWMICmdlet",
			"PSAvoidInvokingEmptyMembers",
			"PSUseLiteralInitializerForHashtable",
			"PSUseProcessBlockForPipelineCommand",
		},
	},
	{
		Name:   "best-practices",
		Marker: "BestPractices",
		Rules: []string{
			"PSAvoidGlobalVars",
			"PSAvoidUsingCmdletAliases",
			"PSAvoidUsingEmptyCatchBlock",
			"PSAvoidUsingPositionalParameters",
			"PSAvoidUsingWriteHost",
			"PSPossibleIncorrectComparisonWithNull",
			"PSProvideCommentHelp",
			"PSReviewUnusedParameter",
			"PSUseApprovedVerbs",
			"PSUseDeclaredVarsMoreThanAssignments",
			"PSUseShouldProcessForStateChangingFunctions",
			"PSUseSingularNouns",
		},
	},
	{
		Name:   "dsc",
		Marker: "DSC",
		Rules: []string{
			"PSDSCDscExamplesPresent",
			"PSDSCDscTestsPresent",
			"PSDSCReturnCorrectTypesForDSCFunctions",
			"PSDSCStandardDSCFunctionsInResource",
			"PSDSCUseIdenticalMandatoryParametersForDSC",
			"PSDSCUseIdenticalParametersForDSC",
			"PSDSCUseVerboseMessageInDSCResource",
		},
	},
	{
		Name:   "compatibility",
		Marker: "Compatibility",
		Rules: []string{
			"PSUseCompatibleCmdlets",
			"PSUseCompatibleCommands",
			"PSUseCompatibleSyntax",
			"PSUseCompatibleTypes",
		},
	},
}
