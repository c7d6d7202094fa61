package livefeed

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/busradar/pkg/transit"
)

const (
	DefaultEndpoint  = "https://api.ibb.gov.tr/iett/FiloDurum/SeferGerceklesme.asmx"
	DefaultNamespace = "http://tempuri.org/"

	FleetPositionsMethod = "GetFiloAracKonum_json"
	RoutePositionsMethod = "GetHatOtoKonum_json"
)

var (
	ErrTransport         = errors.New("livefeed: transport failure")
	ErrMalformedEnvelope = errors.New("livefeed: malformed envelope")
	ErrMalformedPayload  = errors.New("livefeed: malformed payload")
)

// Client talks to the fleet SOAP service
type Client struct {
	Endpoint   string
	Namespace  string
	HTTPClient *http.Client
}

func NewClient(endpoint string, namespace string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}

	return &Client{
		Endpoint:   endpoint,
		Namespace:  namespace,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

type parameter struct {
	name  string
	value string
}

// Vehicles returns every vehicle currently reporting a usable position
func (c *Client) Vehicles(ctx context.Context) ([]*transit.Vehicle, error) {
	payload, err := c.call(ctx, FleetPositionsMethod)
	if err != nil {
		return nil, err
	}

	vehicles, err := parseFleetPayload(payload)
	if err != nil {
		return nil, err
	}

	log.Debug().Int("vehicles", len(vehicles)).Msg("Fetched fleet positions")

	return vehicles, nil
}

// RouteVehicles returns the door number to route mapping of vehicles running the given route code
func (c *Client) RouteVehicles(ctx context.Context, routeCode string) ([]*transit.RouteCodeEntry, error) {
	payload, err := c.call(ctx, RoutePositionsMethod, parameter{name: "HatKodu", value: routeCode})
	if err != nil {
		return nil, err
	}

	return parseRoutePayload(payload)
}

func (c *Client) call(ctx context.Context, method string, parameters ...parameter) ([]byte, error) {
	body := buildEnvelope(c.Namespace, method, parameters)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", c.Namespace+method)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s returned HTTP %d", ErrTransport, method, resp.StatusCode)
	}

	envelope, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTransport, err)
	}

	return extractResult(envelope, method)
}

func buildEnvelope(namespace string, method string, parameters []parameter) []byte {
	var buffer bytes.Buffer

	buffer.WriteString(`<?xml version="1.0" encoding="utf-8"?>`)
	buffer.WriteString(`<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/" xmlns:tem="`)
	xml.EscapeText(&buffer, []byte(namespace))
	buffer.WriteString(`"><soap:Body>`)

	if len(parameters) == 0 {
		fmt.Fprintf(&buffer, "<tem:%s />", method)
	} else {
		fmt.Fprintf(&buffer, "<tem:%s>", method)
		for _, p := range parameters {
			fmt.Fprintf(&buffer, "<tem:%s>", p.name)
			xml.EscapeText(&buffer, []byte(p.value))
			fmt.Fprintf(&buffer, "</tem:%s>", p.name)
		}
		fmt.Fprintf(&buffer, "</tem:%s>", method)
	}

	buffer.WriteString(`</soap:Body></soap:Envelope>`)

	return buffer.Bytes()
}
