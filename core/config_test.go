package core

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromViper_Defaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	conf := configFromViper(v)

	assert.True(t, conf.Debug)
	assert.Equal(t, "Masomo", conf.AppName)
	assert.Equal(t, ":8000", conf.Server.Address)
	assert.Equal(t, 5*time.Second, conf.Server.ShutdownTimeout)
	assert.Equal(t, "memory", conf.Session.Store)
	assert.Equal(t, 12*time.Hour, conf.Session.TTL)
	assert.False(t, conf.Portal.SkipAuth)
	assert.Empty(t, conf.Accounts)
}

func TestConfigFromViper_YAML(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	err := v.ReadConfig(strings.NewReader(`
session:
  store: REDIS
  ttl: 30m
portal:
  skipAuth: true
accounts:
  - name: Jane Doe
    username: jane
    email: jane@masomo.cd
    passwordHash: $2a$10$abc
    roles: ["admin:owner", "teacher:"]
`))
	require.NoError(t, err)

	conf := configFromViper(v)

	assert.Equal(t, "redis", conf.Session.Store)
	assert.Equal(t, 30*time.Minute, conf.Session.TTL)
	assert.True(t, conf.Portal.SkipAuth)
	require.Len(t, conf.Accounts, 1)
	assert.Equal(t, AccountConfig{
		Name:         "Jane Doe",
		Username:     "jane",
		Email:        "jane@masomo.cd",
		PasswordHash: "$2a$10$abc",
		Roles:        []string{"admin:owner", "teacher:"},
	}, conf.Accounts[0])
}
