package httpapi

import (
	"crypto/rand"
	"encoding/json"
	"math/big"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"github.com/listup/listup-server/internal/config"
	"github.com/listup/listup-server/internal/hub"
	"github.com/listup/listup-server/internal/packs"
)

const releaseVersion = "0.3.0"

// codeAlphabet drops easily-confused characters (0/O, 1/I).
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const codeLength = 6

type api struct {
	hub   *hub.Hub
	store *packs.Store
	cfg   config.Config
	log   *zap.Logger
}

func GenerateCode() (string, error) {
	code := make([]byte, codeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			return "", err
		}
		code[i] = codeAlphabet[n.Int64()]
	}
	return string(code), nil
}

func (a *api) createRoom(w http.ResponseWriter, r *http.Request) {
	var code string
	for {
		c, err := GenerateCode()
		if err != nil {
			http.Error(w, "failed to generate code", http.StatusInternalServerError)
			return
		}
		if a.hub.Get(c) == nil {
			code = c
			break
		}
		a.log.Info("room code collision, regenerating", zap.String("code", c))
	}

	if a.hub.Ensure(code) == nil {
		http.Error(w, "failed to create room", http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusCreated, struct {
		Code string `json:"code"`
	}{Code: code})
}

func (a *api) roomQR(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if a.hub.Get(code) == nil {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}

	png, err := qrcode.Encode(a.cfg.PublicURL+"/room/"+code, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "failed to encode qr", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func (a *api) healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (a *api) version(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("listup-server v" + releaseVersion + "\n"))
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
