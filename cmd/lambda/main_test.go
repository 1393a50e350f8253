package main

import (
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

func TestLambdaOptionsResolve(t *testing.T) {
	var router http.Handler
	var logger zerolog.Logger

	require.NoError(t, fx.ValidateApp(lambdaOptions(&router, &logger)))
}
