package cmd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestConfigInitCmd_Success(t *testing.T) {
	mockProvider := new(MockConfigProvider)
	var out bytes.Buffer

	mockProvider.On("CreateDefaultConfigFiles", mock.AnythingOfType("string")).Return(nil)

	cmd := &cobra.Command{}
	err := configInitRunE(mockProvider, &out, cmd, []string{})

	assert.NoError(t, err)
	assert.Contains(t, out.String(), "Configuration directory and default files ensured.")
	mockProvider.AssertExpectations(t)
	mockProvider.AssertCalled(t, "CreateDefaultConfigFiles", mock.AnythingOfType("string"))
}

func TestConfigInitCmd_ProviderError(t *testing.T) {
	mockProvider := new(MockConfigProvider)
	var out bytes.Buffer

	expectedErr := errors.New("failed to create config dir")
	mockProvider.On("CreateDefaultConfigFiles", mock.AnythingOfType("string")).Return(expectedErr)

	cmd := &cobra.Command{}
	err := configInitRunE(mockProvider, &out, cmd, []string{})

	assert.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Contains(t, err.Error(), "failed to initialize configuration")
	assert.Empty(t, out.String(), "no success message expected on failure")
	mockProvider.AssertExpectations(t)
}
