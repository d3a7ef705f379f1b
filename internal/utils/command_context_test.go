package utils_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/commit-tracker/internal/utils"
)

func TestCommandContextAccessorConfigurationFilePath(testInstance *testing.T) {
	accessor := utils.NewCommandContextAccessor()

	_, available := accessor.ConfigurationFilePath(context.Background())
	require.False(testInstance, available)

	_, emptyAvailable := accessor.ConfigurationFilePath(accessor.WithConfigurationFilePath(context.Background(), ""))
	require.False(testInstance, emptyAvailable)

	configurationFilePath, recorded := accessor.ConfigurationFilePath(accessor.WithConfigurationFilePath(context.Background(), "/etc/commit-tracker/config.yaml"))
	require.True(testInstance, recorded)
	require.Equal(testInstance, "/etc/commit-tracker/config.yaml", configurationFilePath)
}
