// Package service holds the business logic for clientes, procesos, cambios,
// usuarios and the dashboard. Services take their storage clients from the
// request context and never touch HTTP details.
package service

import (
	"context"

	"gorm.io/gorm"

	ctxPkg "github.com/grupovilla/gestprocesos/pkg/context"
	"github.com/grupovilla/gestprocesos/pkg/internal/errs"
	"github.com/grupovilla/gestprocesos/pkg/internal/storage/mq"
	nlog "github.com/grupovilla/gestprocesos/pkg/log"
	"github.com/grupovilla/gestprocesos/pkg/rule"
)

// deps are the storage handles every service needs. The mq client may be
// nil when the caller never publishes.
type deps struct {
	db    *gorm.DB
	blobs BlobStore
	mq    *mq.Client
}

// depsFromContext pulls the storage manager out of the context. Missing
// clients are a programming error, not a runtime condition.
func depsFromContext(c context.Context) deps {
	dbc := ctxPkg.GetDBClient(c)
	s3c := ctxPkg.GetS3Client(c)
	mqc := ctxPkg.GetMQClient(c)

	if dbc == nil || dbc.DB == nil || s3c == nil {
		nlog.Logger().Fatal().Msg("storage clients not initialized")
	}

	return deps{db: dbc.DB, blobs: s3c, mq: mqc}
}

// validateStruct runs the rule tags of a request struct and converts
// failures into the shared validation error shape.
func validateStruct(s any) error {
	if err := rule.ValidateStruct(s); err != nil {
		return errs.NewValidationFields(rule.Errors(err))
	}

	return nil
}
