package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/schema"
	"github.com/sirupsen/logrus"
)

var decoder = func() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}()

func decodeQuery(dst any, r *http.Request) error {
	return decoder.Decode(dst, r.URL.Query())
}

func sendJSON(w http.ResponseWriter, v any) (int, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	w.Header().Set("Content-Type", "application/json")
	return w.Write(payload)
}

func sendJSONOrLog(w http.ResponseWriter, log logrus.FieldLogger, v any) {
	if _, err := sendJSON(w, v); err != nil {
		log.WithError(err).WithField("response", v).Error("unable to send response")
	}
}

func wrapError(err error) map[string]string {
	return map[string]string{"error": err.Error()}
}

func sendError(w http.ResponseWriter, log logrus.FieldLogger, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	sendJSONOrLog(w, log, wrapError(err))
}

func internalError(w http.ResponseWriter, log logrus.FieldLogger, msg string, err error) {
	log.WithError(err).Error(msg)
	w.WriteHeader(http.StatusInternalServerError)
}

func pathId(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil
}
