package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	domainAgent "github.com/orderdesk/orderdesk/internal/domain/agent"
	"github.com/orderdesk/orderdesk/internal/domain/identity"
	"github.com/orderdesk/orderdesk/internal/infrastructure/identityapi"
)

const maxObjectiveLength = 4000

var (
	// ErrInvalidRequest marks caller mistakes: empty or oversized objective.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrUnauthorized marks credentials the identity service rejected.
	ErrUnauthorized = errors.New("unauthorized")
)

// AskRequest is one natural-language objective with the credential to act
// under.
type AskRequest struct {
	Objective  string
	Credential string
}

// AskResponse is the full outcome of one objective: the narrative answer,
// the plan the model produced, and the execution log.
type AskResponse struct {
	RequestID      uuid.UUID            `json:"requestId"`
	Answer         string               `json:"answer"`
	Model          string               `json:"model"`
	Intent         string               `json:"intent,omitempty"`
	Actions        []domainAgent.Result `json:"actions"`
	ContextWarning string               `json:"contextWarning,omitempty"`
}

// ActionSummary describes one catalogued action for the discovery endpoint.
type ActionSummary struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Params      string   `json:"params"`
	Roles       []string `json:"roles"`
}

// Service orchestrates one objective end to end: identity resolution,
// context digest, plan generation, execution, and answer synthesis.
type Service struct {
	identity    identityapi.Client
	catalog     *Catalog
	contextB    *ContextBuilder
	planner     *Planner
	executor    *Executor
	synthesizer *Synthesizer
	logger      zerolog.Logger
}

func NewService(
	identityClient identityapi.Client,
	catalog *Catalog,
	contextBuilder *ContextBuilder,
	planner *Planner,
	executor *Executor,
	synthesizer *Synthesizer,
	logger zerolog.Logger,
) *Service {
	return &Service{
		identity:    identityClient,
		catalog:     catalog,
		contextB:    contextBuilder,
		planner:     planner,
		executor:    executor,
		synthesizer: synthesizer,
		logger:      logger.With().Str("service", "agent").Logger(),
	}
}

// Run handles one objective. Planning is skipped entirely when the caller
// holds no recognized role; the synthesizer still runs so the caller gets an
// answer explaining that nothing could be done.
func (s *Service) Run(ctx context.Context, req AskRequest) (*AskResponse, error) {
	objective := strings.TrimSpace(req.Objective)
	if objective == "" {
		return nil, fmt.Errorf("%w: objective must not be empty", ErrInvalidRequest)
	}
	if len(objective) > maxObjectiveLength {
		return nil, fmt.Errorf("%w: objective exceeds %d characters", ErrInvalidRequest, maxObjectiveLength)
	}

	ec, err := s.resolveCaller(ctx, req.Credential)
	if err != nil {
		return nil, err
	}
	log := s.logger.With().Stringer("request_id", ec.RequestID).Str("username", ec.Username).Logger()
	log.Info().Int("roles", len(ec.Roles)).Msg("objective accepted")

	digest, warning := s.contextB.Build(ctx, ec.Credential)

	var (
		plan    *domainAgent.Plan
		results []domainAgent.Result
	)
	allowed := s.catalog.ListFor(ec.Roles)
	if len(allowed) == 0 {
		log.Info().Msg("caller holds no recognized role; skipping planning")
	} else {
		plan, err = s.planner.GeneratePlan(ctx, objective, digest, allowed, identity.Principal{
			Username: ec.Username,
			Roles:    ec.Roles,
		})
		if err != nil {
			return nil, err
		}
		results = s.executor.Execute(ctx, plan.Actions, ec)
	}

	answer, model, err := s.synthesizer.Synthesize(ctx, objective, digest, plan, results)
	if err != nil {
		return nil, err
	}
	log.Info().Int("executed", len(results)).Str("model", model).Msg("objective answered")

	if results == nil {
		results = []domainAgent.Result{}
	}
	resp := &AskResponse{
		RequestID:      ec.RequestID,
		Answer:         answer,
		Model:          model,
		Actions:        results,
		ContextWarning: warning,
	}
	if plan != nil {
		resp.Intent = plan.Intent
	}
	return resp, nil
}

// ActionsFor lists the catalogued actions the credential's roles allow.
func (s *Service) ActionsFor(ctx context.Context, credential string) ([]ActionSummary, error) {
	ec, err := s.resolveCaller(ctx, credential)
	if err != nil {
		return nil, err
	}
	defs := s.catalog.ListFor(ec.Roles)
	out := make([]ActionSummary, 0, len(defs))
	for _, def := range defs {
		roles := make([]string, len(def.Roles))
		for i, r := range def.Roles {
			roles[i] = string(r)
		}
		out = append(out, ActionSummary{
			Name:        def.Name,
			Description: def.Description,
			Params:      def.Params,
			Roles:       roles,
		})
	}
	return out, nil
}

// resolveCaller verifies the credential with the identity service and builds
// the per-request execution context with normalized roles.
func (s *Service) resolveCaller(ctx context.Context, credential string) (*ExecutionContext, error) {
	if strings.TrimSpace(credential) == "" {
		return nil, fmt.Errorf("%w: missing credential", ErrUnauthorized)
	}
	profile, err := s.identity.WhoAmI(ctx, credential)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return &ExecutionContext{
		RequestID:  uuid.New(),
		Credential: credential,
		Username:   profile.Username,
		Roles:      identity.NormalizeRoles(profile.Roles),
	}, nil
}
