package local

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"stegqr/cryptography"
	"stegqr/protocol"
	"stegqr/qrkey"
	"stegqr/stegano/frame"
	"stegqr/stegano/img"
	"stegqr/util"
)

func writeJsonResponse(w http.ResponseWriter, status int, v any) {
	resp, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(resp)
}

// statusFor maps errors of the lower layers onto HTTP codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, protocol.ErrEmptyMessage),
		errors.Is(err, protocol.ErrNoCarrier),
		errors.Is(err, protocol.ErrNoKey),
		errors.Is(err, cryptography.ErrInvalidKey),
		errors.Is(err, cryptography.ErrInvalidKeyText),
		errors.Is(err, img.ErrUnsupportedFormat),
		errors.Is(err, qrkey.ErrNoCode):
		return http.StatusBadRequest
	case errors.Is(err, protocol.ErrKeyMismatch):
		return http.StatusForbidden
	case errors.Is(err, ErrUploadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, img.ErrInsufficientCapacity),
		errors.Is(err, frame.ErrCorruptFrame),
		errors.Is(err, frame.ErrEmptyField),
		errors.Is(err, frame.ErrPayloadTooLarge):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	util.DebugPrintf("[%d] %v", status, err)
	if status == http.StatusInternalServerError {
		s.logger.LogError(err)
	} else {
		s.logger.LogWarning(err.Error())
	}
	writeJsonResponse(w, status, Result{Errors: []string{err.Error()}})
}

// readUpload returns the content of a multipart file field, nil if absent.
func readUpload(r *http.Request, field string) ([]byte, error) {
	f, _, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (s *Server) parseForm(w http.ResponseWriter, r *http.Request) error {
	limit := s.conf.ServerConfig.MaxUploadBytes
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(limit); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || errors.Is(err, multipart.ErrMessageTooLarge) {
			return fmt.Errorf("%w: limit is %d bytes", ErrUploadTooLarge, limit)
		}
		return fmt.Errorf("%w: %v", protocol.ErrNoCarrier, err)
	}
	return nil
}

func (s *Server) handleHide(w http.ResponseWriter, r *http.Request) {
	if err := s.parseForm(w, r); err != nil {
		s.fail(w, err)
		return
	}
	carrier, err := readUpload(r, "image")
	if err != nil {
		s.fail(w, err)
		return
	}
	res, err := protocol.HideMessage(carrier, r.FormValue("message"), protocol.OptionsFromConfig(s.conf))
	if err != nil {
		s.fail(w, err)
		return
	}

	session := &util.Session{
		CarrierHash: cryptography.Hash(carrier),
		Fingerprint: res.Fingerprint,
		Format:      res.Format,
		Output:      "api",
	}
	if s.journal != nil {
		if err := s.journal.AddSession(session); err != nil {
			s.logger.LogError(fmt.Errorf("failed to journal session: %w", err))
		}
	}
	s.logger.LogInfo("hidden a message, key " + res.Fingerprint)

	writeJsonResponse(w, http.StatusOK, HideResponse{
		ID:          session.ID,
		Stego:       base64.StdEncoding.EncodeToString(res.Stego),
		Format:      res.Format,
		QR:          base64.StdEncoding.EncodeToString(res.QR),
		Key:         res.KeyText,
		Fingerprint: res.Fingerprint,
	})
}

func (s *Server) handleReveal(w http.ResponseWriter, r *http.Request) {
	if err := s.parseForm(w, r); err != nil {
		s.fail(w, err)
		return
	}
	stego, err := readUpload(r, "image")
	if err != nil {
		s.fail(w, err)
		return
	}
	qr, err := readUpload(r, "qr")
	if err != nil {
		s.fail(w, err)
		return
	}

	var key []byte
	switch {
	case qr != nil:
		key, err = protocol.KeyFromQR(qr)
	case r.FormValue("key") != "":
		key, err = cryptography.DecodeKey(r.FormValue("key"))
	default:
		err = protocol.ErrNoKey
	}
	if err != nil {
		s.fail(w, err)
		return
	}

	res, err := protocol.RevealMessage(stego, key)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, RevealResponse{Message: res.Message, Aux: res.Aux})
}

func (s *Server) handleCapacity(w http.ResponseWriter, r *http.Request) {
	if err := s.parseForm(w, r); err != nil {
		s.fail(w, err)
		return
	}
	carrier, err := readUpload(r, "image")
	if err == nil && carrier == nil {
		err = protocol.ErrNoCarrier
	}
	if err != nil {
		s.fail(w, err)
		return
	}
	opts := protocol.OptionsFromConfig(s.conf)
	room, err := protocol.Measure(carrier, opts)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, CapacityResponse{
		Bits:       room.Bits,
		MaxMessage: room.MaxMessage,
		Format:     opts.OutputFormat,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.journal == nil {
		writeJsonResponse(w, http.StatusOK, []util.Session{})
		return
	}
	var sessions []util.Session
	var err error
	if fp := r.URL.Query().Get("fingerprint"); fp != "" {
		sessions, err = s.journal.FindByFingerprint(fp)
	} else {
		limit := 50
		if l, convErr := strconv.Atoi(r.URL.Query().Get("limit")); convErr == nil && l > 0 {
			limit = l
		}
		sessions, err = s.journal.List(limit)
	}
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, sessions)
}
