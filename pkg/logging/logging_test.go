/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestMustGetLogger(t *testing.T) {
	l1 := MustGetLogger("module1")
	require.NotNil(t, l1)
	require.True(t, l1 == MustGetLogger("module1"))
	require.False(t, l1 == MustGetLogger("module2"))
}

func TestSetLevel(t *testing.T) {
	oldLevel := GetLevel()
	defer func() { require.NoError(t, SetLevel(oldLevel)) }()

	require.NoError(t, SetLevel("DEBUG"))
	require.Equal(t, "debug", GetLevel())
	require.True(t, IsEnabledFor(zapcore.DebugLevel))

	require.NoError(t, SetLevel(" warn "))
	require.Equal(t, "warn", GetLevel())
	require.False(t, IsEnabledFor(zapcore.InfoLevel))
	require.True(t, IsEnabledFor(zapcore.ErrorLevel))

	err := SetLevel("chatty")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid log level [chatty]")
	require.Equal(t, "warn", GetLevel())
}
