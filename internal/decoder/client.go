// internal/decoder/client.go

// Package decoder calls the NHTSA vPIC batch VIN decode service and maps its
// response to a partial vehicle record.
package decoder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lotkeeper/carstock-backend/internal/config"
)

// ErrNoResults means the decode service answered but reported a zero count
// for the VIN. No record should be created from it.
var ErrNoResults = errors.New("no results found for the entered VIN")

// ServiceError covers transport and parse failures talking to the decode
// service. Callers surface it to the user and do not retry automatically.
type ServiceError struct {
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("vin decode service: %v", e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// DecodedVehicle is the subset of the vPIC response this system uses.
// Fields absent from the response default to "N/A".
type DecodedVehicle struct {
	Make      string
	Model     string
	ModelYear string
	Series    string
}

type decodeResponse struct {
	Count   int            `json:"Count"`
	Results []decodeResult `json:"Results"`
}

type decodeResult struct {
	Make      string `json:"Make"`
	Model     string `json:"Model"`
	ModelYear string `json:"ModelYear"`
	Series    string `json:"Series"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg config.DecoderConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// Decode posts the VIN to the decode endpoint as form fields
// format=json, data=<vin> and maps the first result. A zero count yields
// ErrNoResults; anything going wrong on the wire yields a *ServiceError.
func (c *Client) Decode(ctx context.Context, vin string) (*DecodedVehicle, error) {
	form := url.Values{}
	form.Set("format", "json")
	form.Set("data", vin)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &ServiceError{Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ServiceError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ServiceError{Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	var payload decodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &ServiceError{Err: fmt.Errorf("decoding response: %w", err)}
	}

	if payload.Count <= 0 || len(payload.Results) == 0 {
		logrus.WithField("vin", vin).Debug("Decode service returned no results")
		return nil, ErrNoResults
	}

	result := payload.Results[0]
	decoded := &DecodedVehicle{
		Make:      orNA(result.Make),
		Model:     orNA(result.Model),
		ModelYear: orNA(result.ModelYear),
		Series:    orNA(result.Series),
	}

	logrus.WithFields(logrus.Fields{
		"vin":        vin,
		"make":       decoded.Make,
		"model":      decoded.Model,
		"model_year": decoded.ModelYear,
		"series":     decoded.Series,
	}).Debug("VIN decoded")

	return decoded, nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
