package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"medvextract/internal/usecase"
)

type Server struct {
	transcriptUC *usecase.TranscriptUseCase
	patientUC    *usecase.PatientUseCase
	vetUC        *usecase.VeterinarianUseCase
	clinicUC     *usecase.ClinicUseCase
	log          *zerolog.Logger
}

func NewServer(
	transcriptUC *usecase.TranscriptUseCase,
	patientUC *usecase.PatientUseCase,
	vetUC *usecase.VeterinarianUseCase,
	clinicUC *usecase.ClinicUseCase,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		transcriptUC: transcriptUC,
		patientUC:    patientUC,
		vetUC:        vetUC,
		clinicUC:     clinicUC,
		log:          logger,
	}
}

// Router wires every route of the service.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/health", s.health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Post("/extract-tasks", s.extractTasks)
	r.Get("/task/{taskID}", s.taskStatus)
	r.Get("/transcripts", s.listTranscripts)

	r.Route("/patients", func(r chi.Router) {
		r.Get("/", s.listPatients)
		r.Post("/", s.createPatient)
		r.Get("/{id}", s.getPatient)
		r.Put("/{id}", s.updatePatient)
		r.Delete("/{id}", s.deletePatient)
	})
	r.Route("/veterinarians", func(r chi.Router) {
		r.Get("/", s.listVeterinarians)
		r.Post("/", s.createVeterinarian)
		r.Get("/{id}", s.getVeterinarian)
		r.Put("/{id}", s.updateVeterinarian)
		r.Delete("/{id}", s.deleteVeterinarian)
	})
	r.Route("/clinics", func(r chi.Router) {
		r.Get("/", s.listClinics)
		r.Post("/", s.createClinic)
		r.Get("/{id}", s.getClinic)
		r.Put("/{id}", s.updateClinic)
		r.Delete("/{id}", s.deleteClinic)
	})

	return r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("http request")
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
