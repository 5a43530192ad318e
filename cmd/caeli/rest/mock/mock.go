package mock

import (
	"context"
	"io"
	"testing"

	"github.com/caeli-works/caeli-api-types/ai"
	"github.com/caeli-works/caeli-api-types/attachments"
	"github.com/caeli-works/caeli-api-types/auth"
	"github.com/caeli-works/caeli-api-types/entities"
	"github.com/caeli-works/caeli-api-types/facets"
	"github.com/caeli-works/caeli-api-types/notifications"
	"github.com/caeli-works/caeli-api-types/relations"
	"github.com/caeli-works/caeli-api-types/sources"
	"github.com/caeli-works/caeli-api-types/tasks"
	"github.com/caeli-works/caeli/cmd/caeli/rest"
	"github.com/caeli-works/caeli/pkg/taskwatch"
)

type PutFacetsArgs struct {
	EntityId string
	Change   facets.Change
}

type VerifyFacetArgs struct {
	FacetId  string
	Verified bool
}

type UpdateEntityArgs struct {
	EntityId string
	Spec     entities.Spec
}

type UpdateSourceArgs struct {
	SourceId string
	Spec     sources.Spec
}

type UpdateRuleArgs struct {
	RuleId string
	Spec   notifications.RuleSpec
}

type UploadAttachmentArgs struct {
	EntityId string
	Filename string
}

type ExportArgs struct {
	Format string
}

func New(t *testing.T) *mockCaeliClient {
	return &mockCaeliClient{t: t}
}

type mockCaeliClient struct {
	t    *testing.T
	Impl struct {
		Login             func(ctx context.Context, req auth.LoginRequest) (auth.TokenPair, error)
		Me                func(ctx context.Context) (auth.Profile, error)
		FindEntities      func(ctx context.Context, filter rest.EntityFilter) ([]entities.Detail, error)
		GetEntity         func(ctx context.Context, entityId string) (entities.Detail, error)
		GetEntityChildren func(ctx context.Context, entityId string) ([]entities.Summary, error)
		RegisterEntity    func(ctx context.Context, spec entities.Spec) (entities.Detail, error)
		UpdateEntity      func(ctx context.Context, entityId string, spec entities.Spec) (entities.Detail, error)
		DeleteEntity      func(ctx context.Context, entityId string) error

		GetFacets         func(ctx context.Context, entityId string) ([]facets.Value, error)
		PutFacetsForEntity func(ctx context.Context, entityId string, change facets.Change) ([]facets.Value, error)
		VerifyFacet       func(ctx context.Context, facetId string, verified bool) (facets.Value, error)
		FindFacetTypes    func(ctx context.Context) ([]facets.FacetType, error)
		RegisterFacetType func(ctx context.Context, spec facets.FacetType) (facets.FacetType, error)

		FindRelations     func(ctx context.Context, filter rest.RelationFilter) ([]relations.Relation, error)
		FindRelationTypes func(ctx context.Context) ([]relations.RelationType, error)
		RegisterRelation  func(ctx context.Context, spec relations.Spec) (relations.Relation, error)
		DeleteRelation    func(ctx context.Context, relationId string) error

		FindSources    func(ctx context.Context, filter rest.SourceFilter) ([]sources.Detail, error)
		GetSource      func(ctx context.Context, sourceId string) (sources.Detail, error)
		RegisterSource func(ctx context.Context, spec sources.Spec) (sources.Detail, error)
		UpdateSource   func(ctx context.Context, sourceId string, spec sources.Spec) (sources.Detail, error)
		DeleteSource   func(ctx context.Context, sourceId string) error
		StartCrawl     func(ctx context.Context, sourceId string) (tasks.Task, error)

		FindNotifications        func(ctx context.Context, filter rest.NotificationFilter) ([]notifications.Notification, error)
		GetUnreadCount           func(ctx context.Context) (notifications.UnreadCount, error)
		MarkNotificationRead     func(ctx context.Context, notificationId string) (notifications.Notification, error)
		FindNotificationRules    func(ctx context.Context) ([]notifications.Rule, error)
		RegisterNotificationRule func(ctx context.Context, spec notifications.RuleSpec) (notifications.Rule, error)
		UpdateNotificationRule   func(ctx context.Context, ruleId string, spec notifications.RuleSpec) (notifications.Rule, error)
		DeleteNotificationRule   func(ctx context.Context, ruleId string) error

		StartEnrichment func(ctx context.Context, req ai.EnrichmentRequest) (tasks.Task, error)
		StartAnalysis   func(ctx context.Context, attachmentId string) (tasks.Task, error)

		UploadAttachment func(ctx context.Context, entityId string, filename string, r io.Reader) (attachments.Attachment, error)
		ListAttachments  func(ctx context.Context, entityId string) ([]attachments.Attachment, error)

		GetTask        func(ctx context.Context, taskId string) (tasks.Task, error)
		CancelTask     func(ctx context.Context, taskId string) (tasks.Task, error)
		DialTaskEvents func(ctx context.Context, taskId string) (taskwatch.EventStream, error)

		ExportEntities func(ctx context.Context, format string, handler func(io.Reader) error) error
	}
	Calls struct {
		Login             []auth.LoginRequest
		Me                int
		FindEntities      []rest.EntityFilter
		GetEntity         []string
		GetEntityChildren []string
		RegisterEntity    []entities.Spec
		UpdateEntity      []UpdateEntityArgs
		DeleteEntity      []string

		GetFacets         []string
		PutFacetsForEntity []PutFacetsArgs
		VerifyFacet       []VerifyFacetArgs
		FindFacetTypes    int
		RegisterFacetType []facets.FacetType

		FindRelations     []rest.RelationFilter
		FindRelationTypes int
		RegisterRelation  []relations.Spec
		DeleteRelation    []string

		FindSources    []rest.SourceFilter
		GetSource      []string
		RegisterSource []sources.Spec
		UpdateSource   []UpdateSourceArgs
		DeleteSource   []string
		StartCrawl     []string

		FindNotifications        []rest.NotificationFilter
		GetUnreadCount           int
		MarkNotificationRead     []string
		FindNotificationRules    int
		RegisterNotificationRule []notifications.RuleSpec
		UpdateNotificationRule   []UpdateRuleArgs
		DeleteNotificationRule   []string

		StartEnrichment []ai.EnrichmentRequest
		StartAnalysis   []string

		UploadAttachment []UploadAttachmentArgs
		ListAttachments  []string

		GetTask        []string
		CancelTask     []string
		DialTaskEvents []string

		ExportEntities []ExportArgs
	}
}

var _ rest.CaeliClient = &mockCaeliClient{}

func (m *mockCaeliClient) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenPair, error) {
	m.t.Helper()

	m.Calls.Login = append(m.Calls.Login, req)
	if m.Impl.Login == nil {
		m.t.Fatal("Login is not ready to be called")
	}
	return m.Impl.Login(ctx, req)
}

func (m *mockCaeliClient) Me(ctx context.Context) (auth.Profile, error) {
	m.t.Helper()

	m.Calls.Me += 1
	if m.Impl.Me == nil {
		m.t.Fatal("Me is not ready to be called")
	}
	return m.Impl.Me(ctx)
}

func (m *mockCaeliClient) FindEntities(ctx context.Context, filter rest.EntityFilter) ([]entities.Detail, error) {
	m.t.Helper()

	m.Calls.FindEntities = append(m.Calls.FindEntities, filter)
	if m.Impl.FindEntities == nil {
		m.t.Fatal("FindEntities is not ready to be called")
	}
	return m.Impl.FindEntities(ctx, filter)
}

func (m *mockCaeliClient) GetEntity(ctx context.Context, entityId string) (entities.Detail, error) {
	m.t.Helper()

	m.Calls.GetEntity = append(m.Calls.GetEntity, entityId)
	if m.Impl.GetEntity == nil {
		m.t.Fatal("GetEntity is not ready to be called")
	}
	return m.Impl.GetEntity(ctx, entityId)
}

func (m *mockCaeliClient) GetEntityChildren(ctx context.Context, entityId string) ([]entities.Summary, error) {
	m.t.Helper()

	m.Calls.GetEntityChildren = append(m.Calls.GetEntityChildren, entityId)
	if m.Impl.GetEntityChildren == nil {
		m.t.Fatal("GetEntityChildren is not ready to be called")
	}
	return m.Impl.GetEntityChildren(ctx, entityId)
}

func (m *mockCaeliClient) RegisterEntity(ctx context.Context, spec entities.Spec) (entities.Detail, error) {
	m.t.Helper()

	m.Calls.RegisterEntity = append(m.Calls.RegisterEntity, spec)
	if m.Impl.RegisterEntity == nil {
		m.t.Fatal("RegisterEntity is not ready to be called")
	}
	return m.Impl.RegisterEntity(ctx, spec)
}

func (m *mockCaeliClient) UpdateEntity(ctx context.Context, entityId string, spec entities.Spec) (entities.Detail, error) {
	m.t.Helper()

	m.Calls.UpdateEntity = append(m.Calls.UpdateEntity, UpdateEntityArgs{EntityId: entityId, Spec: spec})
	if m.Impl.UpdateEntity == nil {
		m.t.Fatal("UpdateEntity is not ready to be called")
	}
	return m.Impl.UpdateEntity(ctx, entityId, spec)
}

func (m *mockCaeliClient) DeleteEntity(ctx context.Context, entityId string) error {
	m.t.Helper()

	m.Calls.DeleteEntity = append(m.Calls.DeleteEntity, entityId)
	if m.Impl.DeleteEntity == nil {
		m.t.Fatal("DeleteEntity is not ready to be called")
	}
	return m.Impl.DeleteEntity(ctx, entityId)
}

func (m *mockCaeliClient) GetFacets(ctx context.Context, entityId string) ([]facets.Value, error) {
	m.t.Helper()

	m.Calls.GetFacets = append(m.Calls.GetFacets, entityId)
	if m.Impl.GetFacets == nil {
		m.t.Fatal("GetFacets is not ready to be called")
	}
	return m.Impl.GetFacets(ctx, entityId)
}

func (m *mockCaeliClient) PutFacetsForEntity(ctx context.Context, entityId string, change facets.Change) ([]facets.Value, error) {
	m.t.Helper()

	m.Calls.PutFacetsForEntity = append(m.Calls.PutFacetsForEntity, PutFacetsArgs{EntityId: entityId, Change: change})
	if m.Impl.PutFacetsForEntity == nil {
		m.t.Fatal("PutFacetsForEntity is not ready to be called")
	}
	return m.Impl.PutFacetsForEntity(ctx, entityId, change)
}

func (m *mockCaeliClient) VerifyFacet(ctx context.Context, facetId string, verified bool) (facets.Value, error) {
	m.t.Helper()

	m.Calls.VerifyFacet = append(m.Calls.VerifyFacet, VerifyFacetArgs{FacetId: facetId, Verified: verified})
	if m.Impl.VerifyFacet == nil {
		m.t.Fatal("VerifyFacet is not ready to be called")
	}
	return m.Impl.VerifyFacet(ctx, facetId, verified)
}

func (m *mockCaeliClient) FindFacetTypes(ctx context.Context) ([]facets.FacetType, error) {
	m.t.Helper()

	m.Calls.FindFacetTypes += 1
	if m.Impl.FindFacetTypes == nil {
		m.t.Fatal("FindFacetTypes is not ready to be called")
	}
	return m.Impl.FindFacetTypes(ctx)
}

func (m *mockCaeliClient) RegisterFacetType(ctx context.Context, spec facets.FacetType) (facets.FacetType, error) {
	m.t.Helper()

	m.Calls.RegisterFacetType = append(m.Calls.RegisterFacetType, spec)
	if m.Impl.RegisterFacetType == nil {
		m.t.Fatal("RegisterFacetType is not ready to be called")
	}
	return m.Impl.RegisterFacetType(ctx, spec)
}

func (m *mockCaeliClient) FindRelations(ctx context.Context, filter rest.RelationFilter) ([]relations.Relation, error) {
	m.t.Helper()

	m.Calls.FindRelations = append(m.Calls.FindRelations, filter)
	if m.Impl.FindRelations == nil {
		m.t.Fatal("FindRelations is not ready to be called")
	}
	return m.Impl.FindRelations(ctx, filter)
}

func (m *mockCaeliClient) FindRelationTypes(ctx context.Context) ([]relations.RelationType, error) {
	m.t.Helper()

	m.Calls.FindRelationTypes += 1
	if m.Impl.FindRelationTypes == nil {
		m.t.Fatal("FindRelationTypes is not ready to be called")
	}
	return m.Impl.FindRelationTypes(ctx)
}

func (m *mockCaeliClient) RegisterRelation(ctx context.Context, spec relations.Spec) (relations.Relation, error) {
	m.t.Helper()

	m.Calls.RegisterRelation = append(m.Calls.RegisterRelation, spec)
	if m.Impl.RegisterRelation == nil {
		m.t.Fatal("RegisterRelation is not ready to be called")
	}
	return m.Impl.RegisterRelation(ctx, spec)
}

func (m *mockCaeliClient) DeleteRelation(ctx context.Context, relationId string) error {
	m.t.Helper()

	m.Calls.DeleteRelation = append(m.Calls.DeleteRelation, relationId)
	if m.Impl.DeleteRelation == nil {
		m.t.Fatal("DeleteRelation is not ready to be called")
	}
	return m.Impl.DeleteRelation(ctx, relationId)
}

func (m *mockCaeliClient) FindSources(ctx context.Context, filter rest.SourceFilter) ([]sources.Detail, error) {
	m.t.Helper()

	m.Calls.FindSources = append(m.Calls.FindSources, filter)
	if m.Impl.FindSources == nil {
		m.t.Fatal("FindSources is not ready to be called")
	}
	return m.Impl.FindSources(ctx, filter)
}

func (m *mockCaeliClient) GetSource(ctx context.Context, sourceId string) (sources.Detail, error) {
	m.t.Helper()

	m.Calls.GetSource = append(m.Calls.GetSource, sourceId)
	if m.Impl.GetSource == nil {
		m.t.Fatal("GetSource is not ready to be called")
	}
	return m.Impl.GetSource(ctx, sourceId)
}

func (m *mockCaeliClient) RegisterSource(ctx context.Context, spec sources.Spec) (sources.Detail, error) {
	m.t.Helper()

	m.Calls.RegisterSource = append(m.Calls.RegisterSource, spec)
	if m.Impl.RegisterSource == nil {
		m.t.Fatal("RegisterSource is not ready to be called")
	}
	return m.Impl.RegisterSource(ctx, spec)
}

func (m *mockCaeliClient) UpdateSource(ctx context.Context, sourceId string, spec sources.Spec) (sources.Detail, error) {
	m.t.Helper()

	m.Calls.UpdateSource = append(m.Calls.UpdateSource, UpdateSourceArgs{SourceId: sourceId, Spec: spec})
	if m.Impl.UpdateSource == nil {
		m.t.Fatal("UpdateSource is not ready to be called")
	}
	return m.Impl.UpdateSource(ctx, sourceId, spec)
}

func (m *mockCaeliClient) DeleteSource(ctx context.Context, sourceId string) error {
	m.t.Helper()

	m.Calls.DeleteSource = append(m.Calls.DeleteSource, sourceId)
	if m.Impl.DeleteSource == nil {
		m.t.Fatal("DeleteSource is not ready to be called")
	}
	return m.Impl.DeleteSource(ctx, sourceId)
}

func (m *mockCaeliClient) StartCrawl(ctx context.Context, sourceId string) (tasks.Task, error) {
	m.t.Helper()

	m.Calls.StartCrawl = append(m.Calls.StartCrawl, sourceId)
	if m.Impl.StartCrawl == nil {
		m.t.Fatal("StartCrawl is not ready to be called")
	}
	return m.Impl.StartCrawl(ctx, sourceId)
}

func (m *mockCaeliClient) FindNotifications(ctx context.Context, filter rest.NotificationFilter) ([]notifications.Notification, error) {
	m.t.Helper()

	m.Calls.FindNotifications = append(m.Calls.FindNotifications, filter)
	if m.Impl.FindNotifications == nil {
		m.t.Fatal("FindNotifications is not ready to be called")
	}
	return m.Impl.FindNotifications(ctx, filter)
}

func (m *mockCaeliClient) GetUnreadCount(ctx context.Context) (notifications.UnreadCount, error) {
	m.t.Helper()

	m.Calls.GetUnreadCount += 1
	if m.Impl.GetUnreadCount == nil {
		m.t.Fatal("GetUnreadCount is not ready to be called")
	}
	return m.Impl.GetUnreadCount(ctx)
}

func (m *mockCaeliClient) MarkNotificationRead(ctx context.Context, notificationId string) (notifications.Notification, error) {
	m.t.Helper()

	m.Calls.MarkNotificationRead = append(m.Calls.MarkNotificationRead, notificationId)
	if m.Impl.MarkNotificationRead == nil {
		m.t.Fatal("MarkNotificationRead is not ready to be called")
	}
	return m.Impl.MarkNotificationRead(ctx, notificationId)
}

func (m *mockCaeliClient) FindNotificationRules(ctx context.Context) ([]notifications.Rule, error) {
	m.t.Helper()

	m.Calls.FindNotificationRules += 1
	if m.Impl.FindNotificationRules == nil {
		m.t.Fatal("FindNotificationRules is not ready to be called")
	}
	return m.Impl.FindNotificationRules(ctx)
}

func (m *mockCaeliClient) RegisterNotificationRule(ctx context.Context, spec notifications.RuleSpec) (notifications.Rule, error) {
	m.t.Helper()

	m.Calls.RegisterNotificationRule = append(m.Calls.RegisterNotificationRule, spec)
	if m.Impl.RegisterNotificationRule == nil {
		m.t.Fatal("RegisterNotificationRule is not ready to be called")
	}
	return m.Impl.RegisterNotificationRule(ctx, spec)
}

func (m *mockCaeliClient) UpdateNotificationRule(ctx context.Context, ruleId string, spec notifications.RuleSpec) (notifications.Rule, error) {
	m.t.Helper()

	m.Calls.UpdateNotificationRule = append(m.Calls.UpdateNotificationRule, UpdateRuleArgs{RuleId: ruleId, Spec: spec})
	if m.Impl.UpdateNotificationRule == nil {
		m.t.Fatal("UpdateNotificationRule is not ready to be called")
	}
	return m.Impl.UpdateNotificationRule(ctx, ruleId, spec)
}

func (m *mockCaeliClient) DeleteNotificationRule(ctx context.Context, ruleId string) error {
	m.t.Helper()

	m.Calls.DeleteNotificationRule = append(m.Calls.DeleteNotificationRule, ruleId)
	if m.Impl.DeleteNotificationRule == nil {
		m.t.Fatal("DeleteNotificationRule is not ready to be called")
	}
	return m.Impl.DeleteNotificationRule(ctx, ruleId)
}

func (m *mockCaeliClient) StartEnrichment(ctx context.Context, req ai.EnrichmentRequest) (tasks.Task, error) {
	m.t.Helper()

	m.Calls.StartEnrichment = append(m.Calls.StartEnrichment, req)
	if m.Impl.StartEnrichment == nil {
		m.t.Fatal("StartEnrichment is not ready to be called")
	}
	return m.Impl.StartEnrichment(ctx, req)
}

func (m *mockCaeliClient) StartAnalysis(ctx context.Context, attachmentId string) (tasks.Task, error) {
	m.t.Helper()

	m.Calls.StartAnalysis = append(m.Calls.StartAnalysis, attachmentId)
	if m.Impl.StartAnalysis == nil {
		m.t.Fatal("StartAnalysis is not ready to be called")
	}
	return m.Impl.StartAnalysis(ctx, attachmentId)
}

func (m *mockCaeliClient) UploadAttachment(ctx context.Context, entityId string, filename string, r io.Reader) (attachments.Attachment, error) {
	m.t.Helper()

	m.Calls.UploadAttachment = append(m.Calls.UploadAttachment, UploadAttachmentArgs{EntityId: entityId, Filename: filename})
	if m.Impl.UploadAttachment == nil {
		m.t.Fatal("UploadAttachment is not ready to be called")
	}
	return m.Impl.UploadAttachment(ctx, entityId, filename, r)
}

func (m *mockCaeliClient) ListAttachments(ctx context.Context, entityId string) ([]attachments.Attachment, error) {
	m.t.Helper()

	m.Calls.ListAttachments = append(m.Calls.ListAttachments, entityId)
	if m.Impl.ListAttachments == nil {
		m.t.Fatal("ListAttachments is not ready to be called")
	}
	return m.Impl.ListAttachments(ctx, entityId)
}

func (m *mockCaeliClient) GetTask(ctx context.Context, taskId string) (tasks.Task, error) {
	m.t.Helper()

	m.Calls.GetTask = append(m.Calls.GetTask, taskId)
	if m.Impl.GetTask == nil {
		m.t.Fatal("GetTask is not ready to be called")
	}
	return m.Impl.GetTask(ctx, taskId)
}

func (m *mockCaeliClient) CancelTask(ctx context.Context, taskId string) (tasks.Task, error) {
	m.t.Helper()

	m.Calls.CancelTask = append(m.Calls.CancelTask, taskId)
	if m.Impl.CancelTask == nil {
		m.t.Fatal("CancelTask is not ready to be called")
	}
	return m.Impl.CancelTask(ctx, taskId)
}

func (m *mockCaeliClient) DialTaskEvents(ctx context.Context, taskId string) (taskwatch.EventStream, error) {
	m.t.Helper()

	m.Calls.DialTaskEvents = append(m.Calls.DialTaskEvents, taskId)
	if m.Impl.DialTaskEvents == nil {
		m.t.Fatal("DialTaskEvents is not ready to be called")
	}
	return m.Impl.DialTaskEvents(ctx, taskId)
}

func (m *mockCaeliClient) ExportEntities(ctx context.Context, format string, handler func(io.Reader) error) error {
	m.t.Helper()

	m.Calls.ExportEntities = append(m.Calls.ExportEntities, ExportArgs{Format: format})
	if m.Impl.ExportEntities == nil {
		m.t.Fatal("ExportEntities is not ready to be called")
	}
	return m.Impl.ExportEntities(ctx, format, handler)
}
