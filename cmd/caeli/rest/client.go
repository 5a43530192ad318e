package rest

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/caeli-works/caeli-api-types/ai"
	"github.com/caeli-works/caeli-api-types/attachments"
	"github.com/caeli-works/caeli-api-types/auth"
	"github.com/caeli-works/caeli-api-types/entities"
	"github.com/caeli-works/caeli-api-types/facets"
	"github.com/caeli-works/caeli-api-types/notifications"
	"github.com/caeli-works/caeli-api-types/relations"
	"github.com/caeli-works/caeli-api-types/sources"
	"github.com/caeli-works/caeli-api-types/tasks"
	kprof "github.com/caeli-works/caeli/cmd/caeli/config/profiles"
	"github.com/caeli-works/caeli/pkg/taskwatch"
	"github.com/caeli-works/caeli/pkg/utils"
	"golang.org/x/time/rate"
)

type CaeliClient interface {
	// Login exchanges username and password for a token pair.
	//
	// The returned pair is not persisted here; pass it to
	// Session.Update to keep it.
	Login(ctx context.Context, req auth.LoginRequest) (auth.TokenPair, error)

	// Me returns the profile of the logged-in user.
	Me(ctx context.Context) (auth.Profile, error)

	// FindEntities finds entities matching the filter.
	//
	// Args
	//
	// - context.Context
	//
	// - EntityFilter: conditions which entities to be found satisfy.
	//
	// Returns
	//
	// - []entities.Detail: metadata of found entities
	//
	// - error
	FindEntities(ctx context.Context, filter EntityFilter) ([]entities.Detail, error)

	// GetEntity gets entity detail with given entityId.
	//
	// Args
	//
	// - context.Context
	//
	// - string: entityId to be found
	//
	// Returns
	//
	// - entities.Detail: metadata of found entity
	//
	// - error
	GetEntity(ctx context.Context, entityId string) (entities.Detail, error)

	// GetEntityChildren lists the direct children of an entity.
	GetEntityChildren(ctx context.Context, entityId string) ([]entities.Summary, error)

	// RegisterEntity registers a new entity.
	//
	// Args
	//
	// - context.Context
	//
	// - entities.Spec: spec of entity to be registered
	//
	// Returns
	//
	// - entities.Detail: metadata of created entity
	//
	// - error
	RegisterEntity(ctx context.Context, spec entities.Spec) (entities.Detail, error)

	// UpdateEntity replaces the mutable fields of an entity.
	UpdateEntity(ctx context.Context, entityId string, spec entities.Spec) (entities.Detail, error)

	// DeleteEntity deletes entity with given entityId.
	DeleteEntity(ctx context.Context, entityId string) error

	// GetFacets lists the facet values of an entity.
	//
	// Args
	//
	// - context.Context
	//
	// - string: entityId whose facets are to be listed
	//
	// Returns
	//
	// - []facets.Value: facet values of the entity
	//
	// - error
	GetFacets(ctx context.Context, entityId string) ([]facets.Value, error)

	// PutFacetsForEntity sets/removes facet values of an entity.
	//
	// Args
	//
	// - string: entityId to be changed
	//
	// - facets.Change: adding/removing facet values.
	//
	// Returns
	//
	// - []facets.Value: facet values after the change
	//
	// - error
	PutFacetsForEntity(ctx context.Context, entityId string, change facets.Change) ([]facets.Value, error)

	// VerifyFacet marks a facet value as human-verified (or drops the
	// mark again).
	VerifyFacet(ctx context.Context, facetId string, verified bool) (facets.Value, error)

	// FindFacetTypes lists the registered facet types.
	FindFacetTypes(ctx context.Context) ([]facets.FacetType, error)

	// RegisterFacetType registers a new facet type.
	RegisterFacetType(ctx context.Context, spec facets.FacetType) (facets.FacetType, error)

	// FindRelations finds relations matching the filter.
	FindRelations(ctx context.Context, filter RelationFilter) ([]relations.Relation, error)

	// FindRelationTypes lists the registered relation types.
	FindRelationTypes(ctx context.Context) ([]relations.RelationType, error)

	// RegisterRelation registers a new relation between two entities.
	RegisterRelation(ctx context.Context, spec relations.Spec) (relations.Relation, error)

	// DeleteRelation deletes relation with given relationId.
	DeleteRelation(ctx context.Context, relationId string) error

	// FindSources finds data sources matching the filter.
	FindSources(ctx context.Context, filter SourceFilter) ([]sources.Detail, error)

	// GetSource gets data source detail with given sourceId.
	GetSource(ctx context.Context, sourceId string) (sources.Detail, error)

	// RegisterSource registers a new data source.
	RegisterSource(ctx context.Context, spec sources.Spec) (sources.Detail, error)

	// UpdateSource replaces the configuration of a data source.
	UpdateSource(ctx context.Context, sourceId string, spec sources.Spec) (sources.Detail, error)

	// DeleteSource deletes data source with given sourceId.
	DeleteSource(ctx context.Context, sourceId string) error

	// StartCrawl asks the server to crawl a data source now.
	//
	// Returns
	//
	// - tasks.Task: the crawl task, to be watched for completion
	//
	// - error
	StartCrawl(ctx context.Context, sourceId string) (tasks.Task, error)

	// FindNotifications finds notifications matching the filter.
	FindNotifications(ctx context.Context, filter NotificationFilter) ([]notifications.Notification, error)

	// GetUnreadCount returns the number of unread notifications.
	GetUnreadCount(ctx context.Context) (notifications.UnreadCount, error)

	// MarkNotificationRead marks a notification as read.
	MarkNotificationRead(ctx context.Context, notificationId string) (notifications.Notification, error)

	// FindNotificationRules lists the notification rules.
	FindNotificationRules(ctx context.Context) ([]notifications.Rule, error)

	// RegisterNotificationRule registers a new notification rule.
	RegisterNotificationRule(ctx context.Context, spec notifications.RuleSpec) (notifications.Rule, error)

	// UpdateNotificationRule replaces a notification rule.
	UpdateNotificationRule(ctx context.Context, ruleId string, spec notifications.RuleSpec) (notifications.Rule, error)

	// DeleteNotificationRule deletes notification rule with given ruleId.
	DeleteNotificationRule(ctx context.Context, ruleId string) error

	// StartEnrichment asks the AI backend to fill facets of an entity.
	//
	// Calls are guarded by a circuit breaker; while the AI endpoints
	// are failing this returns ErrAIUnavailable without touching the
	// server.
	//
	// Returns
	//
	// - tasks.Task: the enrichment task, to be watched for completion
	//
	// - error
	StartEnrichment(ctx context.Context, req ai.EnrichmentRequest) (tasks.Task, error)

	// StartAnalysis asks the AI backend to analyse an uploaded
	// document. Guarded by the same circuit breaker as
	// StartEnrichment.
	StartAnalysis(ctx context.Context, attachmentId string) (tasks.Task, error)

	// UploadAttachment uploads a document for an entity.
	//
	// Args
	//
	// - string: entityId the document belongs to
	//
	// - string: filename as shown to other users
	//
	// - io.Reader: document content
	//
	// Returns
	//
	// - attachments.Attachment: metadata of the stored document
	//
	// - error
	UploadAttachment(ctx context.Context, entityId string, filename string, r io.Reader) (attachments.Attachment, error)

	// ListAttachments lists the documents uploaded for an entity.
	ListAttachments(ctx context.Context, entityId string) ([]attachments.Attachment, error)

	// GetTask gets task status with given taskId.
	GetTask(ctx context.Context, taskId string) (tasks.Task, error)

	// CancelTask cancels task with given taskId.
	//
	// Tasks already in a terminal status cannot be cancelled; the
	// server answers 4xx for those.
	CancelTask(ctx context.Context, taskId string) (tasks.Task, error)

	// DialTaskEvents opens the event stream of a task.
	//
	// Returns
	//
	// - taskwatch.EventStream: stream of task status events. The
	// caller owns it and must Close it.
	//
	// - error: taskwatch.ErrWatchUnavailable when the server does not
	// offer the stream, so callers can fall back to polling.
	DialTaskEvents(ctx context.Context, taskId string) (taskwatch.EventStream, error)

	// ExportEntities downloads an export of all entities.
	//
	// Args
	//
	// - string: format, "csv" or "json"
	//
	// - handler: function to be called for the raw stream.
	// If handler returns an error, downloading is stopped and the
	// error is returned.
	//
	// Returns
	//
	// - error: error occured when starting downloading.
	ExportEntities(ctx context.Context, format string, handler func(io.Reader) error) error
}

// EntityFilter is the query of FindEntities. Zero fields do not
// filter.
type EntityFilter struct {
	Type     string
	ParentId string

	// Query is a free-text search over name and external id.
	Query string

	// UpdatedSince keeps only entities updated at or after this time.
	UpdatedSince *string
}

// RelationFilter is the query of FindRelations. Zero fields do not
// filter.
type RelationFilter struct {
	Type   string
	FromId string
	ToId   string
}

// SourceFilter is the query of FindSources. Zero fields do not
// filter.
type SourceFilter struct {
	Kind    string
	Enabled *bool
}

// NotificationFilter is the query of FindNotifications.
type NotificationFilter struct {
	UnreadOnly bool
	Channel    string
}

type client struct {
	httpclient *http.Client
	api        string
	dedup      *dedupCache
	ai         *aiBreaker
	session    *Session
}

type clientConfig struct {
	limiter *rate.Limiter
}

type ClientOption func(*clientConfig)

// WithRateLimit caps the request rate of the client. The default is
// 20 requests per second with a burst of 40.
func WithRateLimit(limit rate.Limit, burst int) ClientOption {
	return func(c *clientConfig) {
		c.limiter = rate.NewLimiter(limit, burst)
	}
}

// create new caeli client for CaeliProfile.
//
// # Args
//
// - *kprof.CaeliProfile
//
// - *Session: credentials to send with requests. Use
// AnonymousSession() for a client that should not authenticate.
//
// # Return
//
// - CaeliClient: created client
//
// - error: If given profile is invalid, ErrProfileInvalid is returned.
func NewClient(prof *kprof.CaeliProfile, session *Session, options ...ClientOption) (CaeliClient, error) {
	if err := prof.Verify(); err != nil {
		return nil, err
	}
	if session == nil {
		session = AnonymousSession()
	}

	conf := clientConfig{
		limiter: rate.NewLimiter(rate.Limit(20), 40),
	}
	for _, opt := range options {
		opt(&conf)
	}

	base := new(http.Client)
	if prof.Cert.CA != "" {
		hc, err := trustCa(base, []string{prof.Cert.CA})
		if err != nil {
			return nil, err
		}
		base = hc
	}

	c := &client{
		api:     strings.TrimSuffix(prof.ApiRoot, "/"),
		dedup:   newDedupCache(),
		ai:      newAIBreaker(),
		session: session,
	}

	// the refresher goes through the bare client. running it through
	// authTransport would let a failing refresh intercept itself.
	refresher := func(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
		return postRefresh(ctx, base, c.apipath("auth", "refresh"), refreshToken)
	}

	c.httpclient = &http.Client{
		Transport: newAuthTransport(base.Transport, session, refresher, conf.limiter),
	}

	return c, nil
}

// build URL with path
func (c *client) apipath(path ...string) string {
	path = utils.Map(path, func(p string) string {
		return strings.TrimPrefix(strings.TrimSuffix(p, "/"), "/")
	})

	return strings.Join(append([]string{c.api}, path...), "/")
}

// dedupGet performs a GET through the dedup cache. Identical GETs
// in flight, or settled within the linger window, share one request
// and one response.
func (c *client) dedupGet(ctx context.Context, rawurl string, query url.Values) (*http.Response, error) {
	return c.dedup.Do(dedupKey(rawurl, query), func() (*cachedResponse, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawurl, nil)
		if err != nil {
			return nil, err
		}
		if len(query) != 0 {
			req.URL.RawQuery = query.Encode()
		}

		resp, err := c.httpclient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		return &cachedResponse{
			status: resp.StatusCode,
			header: resp.Header.Clone(),
			body:   body,
		}, nil
	})
}

func trustCa(hc *http.Client, cacerts []string) (*http.Client, error) {
	if len(cacerts) <= 0 {
		return hc, nil
	}

	if hc.Transport == nil {
		hc.Transport = http.DefaultTransport
	}

	tran, ok := hc.Transport.(*http.Transport)
	if !ok {
		return nil, fmt.Errorf("failed to add ca cert")
	}
	tran = tran.Clone()

	tcc := tran.TLSClientConfig.Clone()
	if tcc == nil {
		tcc = &tls.Config{}
	}

	rootcas := tcc.RootCAs
	if rootcas == nil {
		rootcas = x509.NewCertPool()
		tcc.RootCAs = rootcas
	}
	for _, ca := range cacerts {
		bin, err := base64.StdEncoding.DecodeString(ca)
		if err != nil {
			return nil, err
		}

		if !rootcas.AppendCertsFromPEM(bin) {
			return nil, fmt.Errorf("failed to add cert")
		}
	}

	tran.TLSClientConfig = tcc
	hc.Transport = tran
	return hc, nil
}
