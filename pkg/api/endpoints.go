package api

import (
	"context"
	"errors"

	"github.com/budcare/budcare-registry/pkg/clinics"
	"github.com/budcare/budcare-registry/pkg/dataset"
	"github.com/budcare/budcare-registry/pkg/kit"
	"github.com/budcare/budcare-registry/pkg/page"
	"github.com/budcare/budcare-registry/pkg/strains"
)

// Service bundles the shared catalog with the two domain finders.
// Everything behind it is read-only per request, so endpoints are safe
// to call concurrently.
type Service struct {
	Catalog *dataset.Catalog
	Strains *strains.Finder
	Clinics *clinics.Finder

	// Deliverer, when set, lets the push endpoints send listings to a
	// bot binding as one outbound message per page.
	Deliverer page.Deliverer
}

// Shared request/response types used by both HTTP and MCP transports.

type strainInfoReq struct {
	Query string
}

type listStrainsReq struct {
	// Exclude and Show are raw comma/space-delimited producer filter
	// values as supplied by the command surface.
	Exclude string
	Show    string
}

type clinicInfoReq struct {
	Location string
}

type listClinicsReq struct {
	GroupBy string // "city" (default) or "network"
}

type listResponse struct {
	Pages []page.Page `json:"pages"`
}

type reloadResponse struct {
	Strains int `json:"strains"`
	Clinics int `json:"clinics"`
}

func strainInfoEndpoint(svc *Service) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*strainInfoReq)
		return svc.Strains.InfoPages(req.Query, svc.Catalog.Strains()), nil
	}
}

func listStrainsEndpoint(svc *Service) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*listStrainsReq)

		tokens := strains.PrefixTokens(req.Exclude, '-')
		tokens = append(tokens, strains.PrefixTokens(req.Show, '+')...)
		excluded, included := svc.Strains.Classifier().ParseFilters(tokens)
		if err := strains.ValidateFilters(excluded, included); err != nil {
			return nil, err
		}

		return listResponse{Pages: svc.Strains.ListPages(svc.Catalog.Strains(), excluded, included)}, nil
	}
}

func clinicInfoEndpoint(svc *Service) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*clinicInfoReq)
		return svc.Clinics.InfoPages(req.Location, svc.Catalog.Clinics()), nil
	}
}

func listClinicsEndpoint(svc *Service) kit.Endpoint {
	return func(_ context.Context, request any) (any, error) {
		req := request.(*listClinicsReq)
		groupBy := clinics.ByCity
		if req.GroupBy == "network" {
			groupBy = clinics.ByNetwork
		}
		return listResponse{Pages: clinics.ListPages(svc.Catalog.Clinics(), groupBy)}, nil
	}
}

// ErrNoDeliverer is returned by the push endpoints when no outbound
// webhook is configured.
var ErrNoDeliverer = errors.New("no delivery webhook configured")

type pushReq struct {
	Target    string // "strains" or "clinics"
	Ephemeral bool
}

type pushResponse struct {
	Delivered int `json:"delivered"`
}

func pushEndpoint(svc *Service) kit.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(*pushReq)
		if svc.Deliverer == nil {
			return nil, ErrNoDeliverer
		}

		var pages []page.Page
		switch req.Target {
		case "clinics":
			pages = clinics.ListPages(svc.Catalog.Clinics(), clinics.ByCity)
		default:
			pages = svc.Strains.ListPages(svc.Catalog.Strains(), nil, nil)
		}

		vis := page.Visible
		if req.Ephemeral {
			vis = page.Ephemeral
		}
		if err := page.DeliverAll(ctx, svc.Deliverer, pages, vis); err != nil {
			return nil, err
		}
		return pushResponse{Delivered: len(pages)}, nil
	}
}

func reloadEndpoint(svc *Service) kit.Endpoint {
	return func(_ context.Context, _ any) (any, error) {
		svc.Catalog.Reload()
		return reloadResponse{
			Strains: svc.Catalog.StrainCount(),
			Clinics: svc.Catalog.ClinicCount(),
		}, nil
	}
}
