package main

import (
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"io"
	"log"
	"net/http"
	"sync"

	"github.com/pgavlin/lilraster/internal/driveboard"
	"github.com/pgavlin/lilraster/internal/engrave"
	"github.com/pgavlin/lilraster/internal/laser"
)

// A server lets a client tune the settings of a job for a fixed image and send the result to the machine.
type server struct {
	img      image.Image
	settings laser.Settings
	machine  laser.Machine
	runner   *engrave.Runner

	m    sync.Mutex
	sink io.Writer
}

func (s *server) handleJob(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	settings := s.settings
	if err := json.NewDecoder(req.Body).Decode(&settings); err != nil && err != io.EOF {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result := <-s.runner.Submit(req.Context(), s.img, settings, s.machine)
	switch {
	case errors.Is(result.Err, engrave.ErrSuperseded):
		http.Error(w, result.Err.Error(), http.StatusConflict)
		return
	case errors.Is(result.Err, laser.ErrConfig):
		http.Error(w, result.Err.Error(), http.StatusBadRequest)
		return
	case result.Err != nil:
		log.Printf("error preparing job: %v", result.Err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(newReport(result.Job)); err != nil {
		log.Printf("error encoding job report: %v", err)
	}
}

func (s *server) latest(w http.ResponseWriter, req *http.Request, method string) (*engrave.Job, bool) {
	if req.Method != method {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return nil, false
	}
	job := s.runner.Latest()
	if job == nil {
		http.Error(w, "no job has been prepared", http.StatusNotFound)
		return nil, false
	}
	return job, true
}

func (s *server) handlePreview(w http.ResponseWriter, req *http.Request) {
	job, ok := s.latest(w, req, http.MethodGet)
	if !ok {
		return
	}

	w.Header().Add("Content-Type", "image/png")
	if err := png.Encode(w, &preview{pulses: job.Pulses, scale: 1}); err != nil {
		log.Printf("error encoding preview: %v", err)
	}
}

func (s *server) handleProgram(w http.ResponseWriter, req *http.Request) {
	job, ok := s.latest(w, req, http.MethodGet)
	if !ok {
		return
	}

	program, err := job.Program()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Add("Content-Type", "text/plain")
	if _, err = program.WriteTo(w); err != nil {
		log.Printf("error writing program: %v", err)
	}
}

func (s *server) handlePrint(w http.ResponseWriter, req *http.Request) {
	job, ok := s.latest(w, req, http.MethodPost)
	if !ok {
		return
	}

	program, err := job.Program()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.m.Lock()
	defer s.m.Unlock()
	if err = driveboard.New(s.sink).Run(program, s.machine.TravelFeedrate); err != nil {
		log.Printf("error sending program: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if err = syncSink(s.sink); err != nil {
		log.Printf("error flushing program: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *server) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/job", s.handleJob)
	mux.HandleFunc("/preview.png", s.handlePreview)
	mux.HandleFunc("/program", s.handleProgram)
	mux.HandleFunc("/print", s.handlePrint)
	return mux
}

func serve(address string, s *server) error {
	return http.ListenAndServe(address, s.handler())
}
