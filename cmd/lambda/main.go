package main

import (
	"context"
	"net/http"
	"os"

	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/nevrodda11/torny-aws-api/app"
	"github.com/nevrodda11/torny-aws-api/constants"
	"github.com/nevrodda11/torny-aws-api/lambda"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func lambdaOptions(router *http.Handler, logger *zerolog.Logger) fx.Option {
	return fx.Options(
		app.Core,
		fx.Populate(router, logger),
	)
}

func main() {
	var router http.Handler
	var logger zerolog.Logger

	fxApp := fx.New(lambdaOptions(&router, &logger))

	ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	if err := fxApp.Start(ctx); err != nil {
		bootLogger := zerolog.New(os.Stderr).With().Timestamp().Logger()
		bootLogger.Fatal().Err(err).Msg("failed to start application")
	}

	logger.Info().Msg("lambda handler ready")
	awslambda.Start(lambda.NewAdapter(router).Proxy)
}
