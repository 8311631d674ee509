package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mkret/promptsmith/internal/config"
	"github.com/mkret/promptsmith/internal/snapshot"
	"github.com/mkret/promptsmith/internal/wizard"
)

// scriptedAsker implements wizard.Asker with canned responses. Exhausted
// queues return wizard.ErrAborted, which doubles as the interrupt simulation.
type scriptedAsker struct {
	answers  []string
	choices  []int
	confirms []bool
	shown    []string
}

func (a *scriptedAsker) Ask(prompt, defaultValue string) (string, error) {
	if len(a.answers) == 0 {
		return "", wizard.ErrAborted
	}
	v := a.answers[0]
	a.answers = a.answers[1:]
	if v == "" {
		return defaultValue, nil
	}
	return v, nil
}

func (a *scriptedAsker) AskChoice(prompt string, options []string, defaultIndex int) (int, error) {
	if len(a.choices) == 0 {
		return 0, wizard.ErrAborted
	}
	c := a.choices[0]
	a.choices = a.choices[1:]
	return c, nil
}

func (a *scriptedAsker) Confirm(prompt string, defaultYes bool) (bool, error) {
	if len(a.confirms) == 0 {
		return false, wizard.ErrAborted
	}
	c := a.confirms[0]
	a.confirms = a.confirms[1:]
	return c, nil
}

func (a *scriptedAsker) Show(text string) {
	a.shown = append(a.shown, text)
}

func (a *scriptedAsker) shownText() string {
	return strings.Join(a.shown, "\n")
}

func buildTestConfig() *config.AppConfig {
	return &config.AppConfig{
		DefaultTier: "guided",
		Suggestions: config.SuggestionsConfig{Provider: "none"},
	}
}

// newBuildTestCmd builds a cobra command carrying the build command's flags,
// with stderr captured.
func newBuildTestCmd(t *testing.T, tier, output string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	cmd := &cobra.Command{}
	cmd.Flags().String("tier", "", "")
	cmd.Flags().String("output", "", "")
	if tier != "" {
		require.NoError(t, cmd.Flags().Set("tier", tier))
	}
	if output != "" {
		require.NoError(t, cmd.Flags().Set("output", output))
	}
	var errBuf bytes.Buffer
	cmd.SetErr(&errBuf)
	return cmd, &errBuf
}

func TestBuildCmd_MinimalTierSavesSnapshot(t *testing.T) {
	mockProvider := new(MockConfigProvider)
	mockProvider.On("LoadConfig").Return(buildTestConfig(), nil)

	asker := &scriptedAsker{
		answers: []string{
			"a senior Python developer",
			"review code for bugs and security issues",
			"Be constructive",
			"", // finish constraints
		},
		confirms: []bool{
			true,  // save to file
			false, // skip rating
		},
	}

	outPath := filepath.Join(t.TempDir(), "prompt.json")
	cmd, errBuf := newBuildTestCmd(t, "minimal", outPath)

	runner := NewBuildCmdRunnerForTest(mockProvider, nil, asker)
	err := runner.Run(cmd, nil)

	require.NoError(t, err)
	assert.Empty(t, errBuf.String())

	shown := asker.shownText()
	assert.Contains(t, shown, "=== Prompt Generation Complete ===")
	assert.Contains(t, shown, "Tier:                   MINIMAL")
	assert.Contains(t, shown, "Components filled:      3/3")
	assert.Contains(t, shown, "Clarity:      8.0/10")
	assert.Contains(t, shown, "You are a senior Python developer.")
	assert.Contains(t, shown, "Prompt saved to: "+outPath)

	sn, err := snapshot.Load(outPath)
	require.NoError(t, err, "the snapshot file must be written and loadable")
	assert.Equal(t, "minimal", sn.Tier)
	assert.Equal(t, "a senior Python developer", sn.Components.Role)
	assert.True(t, sn.Validation.IsValid)
	assert.Equal(t, 1.0, sn.Validation.CompletenessScore)
	assert.Equal(t, 3, sn.Metrics.ComponentsFilled)
	mockProvider.AssertExpectations(t)
}

func TestBuildCmd_DeclineSave(t *testing.T) {
	mockProvider := new(MockConfigProvider)
	mockProvider.On("LoadConfig").Return(buildTestConfig(), nil)

	asker := &scriptedAsker{
		answers: []string{
			"a senior Python developer",
			"review code for bugs and security issues",
			"", // no constraints
		},
		confirms: []bool{
			false, // do not save
			false, // skip rating
		},
	}

	outPath := filepath.Join(t.TempDir(), "prompt.json")
	cmd, _ := newBuildTestCmd(t, "minimal", outPath)

	runner := NewBuildCmdRunnerForTest(mockProvider, nil, asker)
	err := runner.Run(cmd, nil)

	require.NoError(t, err)
	assert.NoFileExists(t, outPath, "declining the save must not write a file")
}

func TestBuildCmd_AbortDuringCollection(t *testing.T) {
	mockProvider := new(MockConfigProvider)
	mockProvider.On("LoadConfig").Return(buildTestConfig(), nil)

	asker := &scriptedAsker{} // first Ask aborts

	outPath := filepath.Join(t.TempDir(), "prompt.json")
	cmd, _ := newBuildTestCmd(t, "minimal", outPath)

	runner := NewBuildCmdRunnerForTest(mockProvider, nil, asker)
	err := runner.Run(cmd, nil)

	require.NoError(t, err, "a user abort is a clean exit, not a command failure")
	assert.Contains(t, asker.shownText(), "Aborted. Nothing was saved.")
	assert.NoFileExists(t, outPath, "an aborted run must not leave partial output behind")
}

func TestBuildCmd_InvalidTierFlag(t *testing.T) {
	mockProvider := new(MockConfigProvider)
	mockProvider.On("LoadConfig").Return(buildTestConfig(), nil)

	cmd, _ := newBuildTestCmd(t, "expert", "")

	runner := NewBuildCmdRunnerForTest(mockProvider, nil, &scriptedAsker{})
	err := runner.Run(cmd, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tier")
}

func TestBuildCmd_InteractiveTierSelection(t *testing.T) {
	mockProvider := new(MockConfigProvider)
	mockProvider.On("LoadConfig").Return(buildTestConfig(), nil)

	asker := &scriptedAsker{
		answers: []string{
			"a senior Python developer",
			"review code for bugs and security issues",
			"", // no constraints
		},
		choices: []int{0}, // pick minimal interactively
		confirms: []bool{
			false, // do not save
			false, // skip rating
		},
	}

	cmd, _ := newBuildTestCmd(t, "", "") // no --tier flag

	runner := NewBuildCmdRunnerForTest(mockProvider, nil, asker)
	err := runner.Run(cmd, nil)

	require.NoError(t, err)
	assert.Contains(t, asker.shownText(), "Select the wizard tier:")
	assert.Contains(t, asker.shownText(), "Tier:                   MINIMAL")
}

func TestBuildCmd_SaveFailureKeepsPromptUsable(t *testing.T) {
	mockProvider := new(MockConfigProvider)
	mockProvider.On("LoadConfig").Return(buildTestConfig(), nil)

	asker := &scriptedAsker{
		answers: []string{
			"a senior Python developer",
			"review code for bugs and security issues",
			"", // no constraints
		},
		confirms: []bool{
			true,  // try to save
			false, // skip rating
		},
	}

	// Point the snapshot at a directory that does not exist.
	outPath := filepath.Join(t.TempDir(), "no", "such", "dir", "prompt.json")
	cmd, errBuf := newBuildTestCmd(t, "minimal", outPath)

	runner := NewBuildCmdRunnerForTest(mockProvider, nil, asker)
	err := runner.Run(cmd, nil)

	require.Error(t, err, "a failed save is reported as the command's error")
	assert.Contains(t, errBuf.String(), "could not save the snapshot")
	assert.Contains(t, errBuf.String(), "still valid")
	// The prompt itself was rendered and shown before the save attempt.
	assert.Contains(t, asker.shownText(), "You are a senior Python developer.")
}

func TestBuildCmd_SatisfactionRating(t *testing.T) {
	mockProvider := new(MockConfigProvider)
	mockProvider.On("LoadConfig").Return(buildTestConfig(), nil)

	asker := &scriptedAsker{
		answers: []string{
			"a senior Python developer",
			"review code for bugs and security issues",
			"",  // no constraints
			"9", // rating
		},
		confirms: []bool{
			false, // do not save
			true,  // rate the experience
		},
	}

	cmd, _ := newBuildTestCmd(t, "minimal", "")

	runner := NewBuildCmdRunnerForTest(mockProvider, nil, asker)
	err := runner.Run(cmd, nil)

	require.NoError(t, err)
	assert.Contains(t, asker.shownText(), "Thanks for the feedback!")
}

func TestBuildCmd_InvalidRatingTolerated(t *testing.T) {
	mockProvider := new(MockConfigProvider)
	mockProvider.On("LoadConfig").Return(buildTestConfig(), nil)

	asker := &scriptedAsker{
		answers: []string{
			"a senior Python developer",
			"review code for bugs and security issues",
			"",   // no constraints
			"99", // out of range rating
		},
		confirms: []bool{
			false, // do not save
			true,  // rate the experience
		},
	}

	cmd, _ := newBuildTestCmd(t, "minimal", "")

	runner := NewBuildCmdRunnerForTest(mockProvider, nil, asker)
	err := runner.Run(cmd, nil)

	require.NoError(t, err, "a bad rating never fails the command")
	assert.Contains(t, asker.shownText(), "Invalid rating, but thanks anyway!")
}

func TestBuildCmd_GuidedTierWithSuggestions(t *testing.T) {
	mockProvider := new(MockConfigProvider)
	mockProvider.On("LoadConfig").Return(buildTestConfig(), nil)

	suggester := new(MockSuggester)
	suggester.On("Suggest", mock.Anything, "role", "a marketing expert").
		Return("Name the market segment you know best", nil)

	asker := &scriptedAsker{
		answers: []string{
			"a marketing expert",
			"a senior marketing expert focused on B2B SaaS", // enhanced role
			"write a product launch email for the new release",
			"", // no constraints
			"", // skip context
			"", // skip output format
		},
		confirms: []bool{
			true,  // apply the suggestion
			false, // no examples
			false, // do not save
			false, // skip rating
		},
	}

	cmd, _ := newBuildTestCmd(t, "guided", "")

	runner := NewBuildCmdRunnerForTest(mockProvider, suggester, asker)
	err := runner.Run(cmd, nil)

	require.NoError(t, err)
	shown := asker.shownText()
	assert.Contains(t, shown, "Suggestions accepted:   1/1")
	assert.Contains(t, shown, "You are a senior marketing expert focused on B2B SaaS.")
	suggester.AssertExpectations(t)
}

func TestBuildCmd_ConfigLoadError(t *testing.T) {
	mockProvider := new(MockConfigProvider)
	mockProvider.On("LoadConfig").Return(nil, assert.AnError)

	cmd, errBuf := newBuildTestCmd(t, "minimal", "")

	runner := NewBuildCmdRunnerForTest(mockProvider, nil, &scriptedAsker{})
	err := runner.Run(cmd, nil)

	require.Error(t, err)
	assert.Contains(t, errBuf.String(), "psmith config init")
}
