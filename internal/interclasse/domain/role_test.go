package domain_test

import (
	"testing"

	"github.com/projetointerclasse/interclasse/internal/interclasse/domain"
	"github.com/stretchr/testify/require"
)

func TestRoleCovers(t *testing.T) {
	tests := []struct {
		have, want domain.Role
		ok         bool
	}{
		{domain.RoleReferee, domain.RoleReferee, true},
		{domain.RoleReferee, domain.RoleCaptain, true},
		{domain.RoleReferee, domain.RolePlayer, true},
		{domain.RoleCaptain, domain.RoleReferee, false},
		{domain.RoleCaptain, domain.RoleCaptain, true},
		{domain.RoleCaptain, domain.RolePlayer, true},
		{domain.RolePlayer, domain.RoleCaptain, false},
		{domain.RolePlayer, domain.RolePlayer, true},
		{domain.Role("admin"), domain.RolePlayer, false},
		{domain.RoleReferee, domain.Role("admin"), false},
		{domain.Role(""), domain.Role(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.have)+">="+string(tt.want), func(t *testing.T) {
			require.Equal(t, tt.ok, tt.have.Covers(tt.want))
		})
	}
}

func TestRoleLabel(t *testing.T) {
	require.Equal(t, "Capitão de Equipe", domain.RoleCaptain.Label())
	require.Equal(t, "Juiz", domain.RoleReferee.Label())
	require.Equal(t, "Jogador", domain.RolePlayer.Label())
	require.Equal(t, "admin", domain.Role("admin").Label())
}
