package http

import (
	"github.com/go-chi/chi/v5"

	"github.com/quizforge/quizforge/internal/qtype"
	"github.com/quizforge/quizforge/internal/rbac"
)

// Mount attaches the question-type configuration and grading routes.
// Callers are expected to have installed authentication middleware already;
// per-route authorization happens here.
func Mount(r chi.Router, reg *qtype.Registry, res *qtype.Resolver) {
	r.With(rbac.Require("qtype:view")).Get("/qtypes", ListTypesHandler(reg))
	r.With(rbac.Require("qtype:edit")).Post("/qtypes", CreateTypeHandler(reg))
	r.With(rbac.Require("qtype:edit")).Put("/qtypes/{key}", UpdateTypeHandler(reg))
	r.With(rbac.Require("qtype:edit")).Delete("/qtypes/{key}", DeleteTypeHandler(reg))

	r.Route("/tests/{testID}/qtypes", func(tr chi.Router) {
		tr.With(rbac.Require("qtype:view")).Get("/", ListEffectiveTypesHandler(res))
		tr.With(rbac.Require("override:edit")).Put("/{key}", PutOverrideHandler(res))
		tr.With(rbac.Require("override:edit")).Delete("/{key}", DeleteOverrideHandler(res))
		tr.With(rbac.Require("question:validate")).Post("/{key}/validate", ValidateQuestionHandler(res))
		tr.With(rbac.Require("grade:run")).Post("/{key}/grade", GradeHandler(res))
	})
}
