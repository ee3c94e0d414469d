// Copyright (C) 2025 Phant Project
//
// This file is part of phant-go.
//
// phant-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// phant-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with phant-go.  If not, see <https://www.gnu.org/licenses/>.

package keys

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	privPath := filepath.Join(dir, "actor.pem")
	pubPath := filepath.Join(dir, "actor.pub")

	require.NoError(t, Generate(privPath, pubPath))

	priv, err := LoadPrivate(privPath)
	require.NoError(t, err)
	require.NotNil(t, priv)
	assert.Equal(t, KeyBits, priv.N.BitLen())

	pubPEM, err := LoadPublicPEM(pubPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(pubPEM, "-----BEGIN PUBLIC KEY-----"))

	pub, err := ImportPublic(pubPEM)
	require.NoError(t, err)
	assert.True(t, priv.PublicKey.Equal(pub))
}

func TestGenerate_RefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	privPath := filepath.Join(dir, "actor.pem")
	pubPath := filepath.Join(dir, "actor.pub")
	require.NoError(t, os.WriteFile(privPath, []byte("existing material"), 0o600))

	err := Generate(privPath, pubPath)

	assert.ErrorIs(t, err, ErrKeyFileExists)
	// The public path must not have been created by the failed attempt.
	_, statErr := os.Stat(pubPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestLoadPrivate_EmptyPathIsNil(t *testing.T) {
	key, err := LoadPrivate("")

	require.NoError(t, err)
	assert.Nil(t, key)
}

func TestLoadPrivate_MissingFile(t *testing.T) {
	_, err := LoadPrivate(filepath.Join(t.TempDir(), "nope.pem"))

	assert.Error(t, err)
}

func TestLoadPublicPEM_EmptyPathIsEmptyString(t *testing.T) {
	pemText, err := LoadPublicPEM("")

	require.NoError(t, err)
	assert.Equal(t, "", pemText)
}

func TestImportPublic_EmptyIsNil(t *testing.T) {
	key, err := ImportPublic("")

	require.NoError(t, err)
	assert.Nil(t, key)
}

func TestImportPublic_Garbage(t *testing.T) {
	_, err := ImportPublic("not a pem block")

	assert.Error(t, err)
}

func TestExportPublicPEM_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	privPath := filepath.Join(dir, "k.pem")
	pubPath := filepath.Join(dir, "k.pub")
	require.NoError(t, Generate(privPath, pubPath))

	priv, err := LoadPrivate(privPath)
	require.NoError(t, err)

	pemText, err := ExportPublicPEM(&priv.PublicKey)
	require.NoError(t, err)

	reimported, err := ImportPublic(pemText)
	require.NoError(t, err)
	assert.True(t, priv.PublicKey.Equal(reimported))
}
