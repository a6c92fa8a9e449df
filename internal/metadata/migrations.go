package metadata

import "sort"

// MigrationPrefix is the package prefix shared by every modernizer recipe.
const MigrationPrefix = "io.jenkins.tools.pluginmodernizer."

var knownMigrations = func() map[string]struct{} {
	ids := []string{
		MigrationPrefix + "FetchMetadata",
		MigrationPrefix + "MergeGitIgnoreRecipe",
		MigrationPrefix + "UpdateScmUrl",
		MigrationPrefix + "SetupJenkinsfile",
		MigrationPrefix + "SetupGitIgnore",
		MigrationPrefix + "SetupSecurityScan",
		MigrationPrefix + "AddPluginsBom",
		MigrationPrefix + "MigrateToJUnit5",
		MigrationPrefix + "MigrateToJava25",
		MigrationPrefix + "MigrateToJenkinsBaseLineProperty",
		MigrationPrefix + "AddCodeOwner",
		MigrationPrefix + "UpgradeParentVersion",
		MigrationPrefix + "UpgradeNextMajorParentVersion",
		MigrationPrefix + "UpgradeParent4Version",
		MigrationPrefix + "UpgradeParent5Version",
		MigrationPrefix + "UpgradeParent6Version",
		MigrationPrefix + "UpgradeBomVersion",
		MigrationPrefix + "RemoveDependencyVersionOverride",
		MigrationPrefix + "RemoveDevelopersTag",
		MigrationPrefix + "RemoveExtraMavenProperties",
		MigrationPrefix + "ReplaceIOException2WithIOException",
		MigrationPrefix + "ReplaceLibrariesWithApiPlugin",
		MigrationPrefix + "UseJsonApiPlugin",
		MigrationPrefix + "UseJsonPathApiPlugin",
		MigrationPrefix + "UseAsmApiPlugin",
		MigrationPrefix + "UseJodaTimeApiPlugin",
		MigrationPrefix + "UseGsonApiPlugin",
		MigrationPrefix + "UseJsoupApiPlugin",
		MigrationPrefix + "UseCompressApiPlugin",
		MigrationPrefix + "UseCommonsLangApiPlugin",
		MigrationPrefix + "UseByteBuddyApiPlugin",
		MigrationPrefix + "UseCommonsTextApiPlugin",
		MigrationPrefix + "EnsureRelativePath",
		MigrationPrefix + "UpgradeToRecommendCoreVersion",
		MigrationPrefix + "UpgradeToLatestJava11CoreVersion",
		MigrationPrefix + "UpgradeToLatestJava8CoreVersion",
		MigrationPrefix + "SetupDependabot",
		MigrationPrefix + "SetupRenovate",
		MigrationPrefix + "RemoveReleaseDrafter",
		MigrationPrefix + "FixJellyIssues",
		MigrationPrefix + "conditions.IsUsingRecommendCoreVersion",
		MigrationPrefix + "conditions.IsUsingCoreVersionWithASMRemoved",
		MigrationPrefix + "conditions.IsUsingCoreVersionWithCommonsCompressRemoved",
		MigrationPrefix + "EnsureIndexJelly",
		MigrationPrefix + "MigrateTomakehurstToWiremock",
		MigrationPrefix + "MigrateCommonsLang2ToLang3AndCommonText",
		MigrationPrefix + "MigrateCommonsLangToJdkApi",
		MigrationPrefix + "RemoveOldJavaVersionForModernJenkins",
		MigrationPrefix + "SwitchToRenovate",
		MigrationPrefix + "JavaxAnnotationsToSpotbugs",
		MigrationPrefix + "AddIncrementals",
		MigrationPrefix + "EnableCD",
		MigrationPrefix + "AutoMergeWorkflows",
	}
	m := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return m
}()

// IsKnownMigration reports whether id names a migration recipe the modernizer
// can produce. Matching is exact.
func IsKnownMigration(id string) bool {
	_, ok := knownMigrations[id]
	return ok
}

// KnownMigrations returns the sorted list of known migration identifiers.
func KnownMigrations() []string {
	out := make([]string, 0, len(knownMigrations))
	for id := range knownMigrations {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
