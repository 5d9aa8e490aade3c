package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/terraform-plugin-framework/diag"
	"github.com/hashicorp/terraform-plugin-framework/path"
	"github.com/hashicorp/terraform-plugin-framework/resource"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/planmodifier"
	"github.com/hashicorp/terraform-plugin-framework/resource/schema/stringplanmodifier"
	"github.com/hashicorp/terraform-plugin-framework/types"

	"github.com/mikecbrant/cognito-userpool-clients/internal/manifest"
	"github.com/mikecbrant/cognito-userpool-clients/internal/reconcile"
	"github.com/mikecbrant/cognito-userpool-clients/internal/utils/logging"
)

var _ resource.Resource = (*clientResource)(nil)
var _ resource.ResourceWithConfigure = (*clientResource)(nil)
var _ resource.ResourceWithImportState = (*clientResource)(nil)

// NewClientResource creates the cognitoclients_client resource.
func NewClientResource() resource.Resource { return &clientResource{} }

type clientResource struct {
	data *providerData
}

type clientModel struct {
	ID                              types.String       `tfsdk:"id"`
	UserPoolID                      types.String       `tfsdk:"user_pool_id"`
	ClientID                        types.String       `tfsdk:"client_id"`
	CallbackURLs                    types.List         `tfsdk:"callback_urls"`
	LogoutURLs                      types.List         `tfsdk:"logout_urls"`
	AllowedOAuthFlows               types.List         `tfsdk:"allowed_oauth_flows"`
	AllowedOAuthScopes              types.List         `tfsdk:"allowed_oauth_scopes"`
	SupportedIdentityProviders      types.List         `tfsdk:"supported_identity_providers"`
	AllowedOAuthFlowsUserPoolClient types.Bool         `tfsdk:"allowed_oauth_flows_user_pool_client"`
	CustomDomain                    *CustomDomainBlock `tfsdk:"custom_domain"`

	// Outputs
	DomainTransition types.String `tfsdk:"domain_transition"`
}

func (r *clientResource) Metadata(_ context.Context, req resource.MetadataRequest, resp *resource.MetadataResponse) {
	resp.TypeName = req.ProviderTypeName + "_client"
}

func (r *clientResource) Schema(_ context.Context, _ resource.SchemaRequest, resp *resource.SchemaResponse) {
	list := func(desc string) schema.ListAttribute {
		return schema.ListAttribute{Optional: true, ElementType: types.StringType, Description: desc}
	}
	replace := []planmodifier.String{stringplanmodifier.RequiresReplace()}
	resp.Schema = schema.Schema{
		Description: "Pushes OAuth settings to an existing user pool app client and reconciles the pool's custom domain. Unset lists are cleared on the client.",
		Attributes: map[string]schema.Attribute{
			"id":                                   schema.StringAttribute{Computed: true, PlanModifiers: []planmodifier.String{stringplanmodifier.UseStateForUnknown()}},
			"user_pool_id":                         schema.StringAttribute{Required: true, PlanModifiers: replace},
			"client_id":                            schema.StringAttribute{Required: true, PlanModifiers: replace},
			"callback_urls":                        list("Allowed redirect URLs after sign-in."),
			"logout_urls":                          list("Allowed redirect URLs after sign-out."),
			"allowed_oauth_flows":                  list("code, implicit, or client_credentials."),
			"allowed_oauth_scopes":                 list("OAuth scopes the client may request."),
			"supported_identity_providers":         list("Identity providers enabled for the client."),
			"allowed_oauth_flows_user_pool_client": schema.BoolAttribute{Optional: true},
			// Outputs
			"domain_transition": schema.StringAttribute{Computed: true, Description: "Domain transition applied by the last create or update."},
		},
		Blocks: map[string]schema.Block{
			"custom_domain": schema.SingleNestedBlock{
				Attributes: map[string]schema.Attribute{
					"name":            schema.StringAttribute{Optional: true},
					"certificate_arn": schema.StringAttribute{Optional: true},
				},
			},
		},
	}
}

func (r *clientResource) Configure(_ context.Context, req resource.ConfigureRequest, resp *resource.ConfigureResponse) {
	if req.ProviderData == nil {
		return
	}
	data, ok := req.ProviderData.(*providerData)
	if !ok {
		resp.Diagnostics.AddError("Unexpected provider data", fmt.Sprintf("expected *providerData, got %T", req.ProviderData))
		return
	}
	r.data = data
}

func (r *clientResource) Create(ctx context.Context, req resource.CreateRequest, resp *resource.CreateResponse) {
	var plan clientModel
	resp.Diagnostics.Append(req.Plan.Get(ctx, &plan)...)
	if resp.Diagnostics.HasError() {
		return
	}
	resp.Diagnostics.Append(r.apply(ctx, &plan)...)
	if resp.Diagnostics.HasError() {
		return
	}
	resp.Diagnostics.Append(resp.State.Set(ctx, &plan)...)
}

func (r *clientResource) Update(ctx context.Context, req resource.UpdateRequest, resp *resource.UpdateResponse) {
	var plan clientModel
	resp.Diagnostics.Append(req.Plan.Get(ctx, &plan)...)
	if resp.Diagnostics.HasError() {
		return
	}
	resp.Diagnostics.Append(r.apply(ctx, &plan)...)
	if resp.Diagnostics.HasError() {
		return
	}
	resp.Diagnostics.Append(resp.State.Set(ctx, &plan)...)
}

// Read keeps prior state; the client and domain are reconciled on every apply.
func (r *clientResource) Read(_ context.Context, _ resource.ReadRequest, _ *resource.ReadResponse) {}

func (r *clientResource) Delete(ctx context.Context, req resource.DeleteRequest, resp *resource.DeleteResponse) {
	var state clientModel
	resp.Diagnostics.Append(req.State.Get(ctx, &state)...)
	if resp.Diagnostics.HasError() {
		return
	}
	cfg, diags := toClientConfig(ctx, state)
	resp.Diagnostics.Append(diags...)
	if resp.Diagnostics.HasError() || r.data == nil {
		return
	}
	logger := newTFLogger(ctx)
	resp.Diagnostics.Append(removeOne(ctx, r.data.newPools(logger), cfg, logger)...)
}

// ImportState accepts "<user_pool_id>/<client_id>".
func (r *clientResource) ImportState(ctx context.Context, req resource.ImportStateRequest, resp *resource.ImportStateResponse) {
	poolID, clientID, ok := strings.Cut(req.ID, "/")
	if !ok || poolID == "" || clientID == "" {
		resp.Diagnostics.AddError("Invalid import id", fmt.Sprintf("expected <user_pool_id>/<client_id>, got %q", req.ID))
		return
	}
	resp.Diagnostics.Append(resp.State.SetAttribute(ctx, path.Root("id"), types.StringValue(req.ID))...)
	resp.Diagnostics.Append(resp.State.SetAttribute(ctx, path.Root("user_pool_id"), types.StringValue(poolID))...)
	resp.Diagnostics.Append(resp.State.SetAttribute(ctx, path.Root("client_id"), types.StringValue(clientID))...)
}

func (r *clientResource) apply(ctx context.Context, m *clientModel) diag.Diagnostics {
	var diags diag.Diagnostics
	if r.data == nil {
		diags.AddError("Provider not configured", "the cognitoclients provider must be configured before use")
		return diags
	}
	cfg, d := toClientConfig(ctx, *m)
	diags.Append(d...)
	if diags.HasError() {
		return diags
	}
	logger := newTFLogger(ctx)
	kind, d := deployOne(ctx, r.data.newPools(logger), cfg, logger)
	diags.Append(d...)
	m.ID = types.StringValue(cfg.UserPoolID + "/" + cfg.ClientID)
	m.DomainTransition = types.StringValue(kind)
	return diags
}

// deployOne runs the deploy pass for a single entry. A client update failure is a warning;
// invalid input and domain failures are errors.
func deployOne(ctx context.Context, pools reconcile.UserPools, cfg manifest.ClientConfig, logger logging.Logger) (string, diag.Diagnostics) {
	var diags diag.Diagnostics
	report, _ := reconcile.NewRunner(pools, reconcile.WithLogger(logger)).Deploy(ctx, []manifest.ClientConfig{cfg})
	entry := report.Entries[0]
	kind := ""
	if entry.Transition != nil {
		kind = string(entry.Transition.Kind())
	}
	if entry.ClientErr != nil {
		diags.AddWarning("User pool client update failed", entry.ClientErr.Error())
	}
	if entry.Err != nil {
		diags.AddError("Custom domain reconcile failed", entry.Err.Error())
	}
	return kind, diags
}

func removeOne(ctx context.Context, pools reconcile.UserPools, cfg manifest.ClientConfig, logger logging.Logger) diag.Diagnostics {
	var diags diag.Diagnostics
	if err := reconcile.NewRemovalSweep(pools, reconcile.WithLogger(logger)).Sweep(ctx, []manifest.ClientConfig{cfg}); err != nil {
		diags.AddError("Custom domain removal failed", err.Error())
	}
	return diags
}

func toClientConfig(ctx context.Context, m clientModel) (manifest.ClientConfig, diag.Diagnostics) {
	var diags diag.Diagnostics
	cfg := manifest.ClientConfig{
		UserPoolID:                 m.UserPoolID.ValueString(),
		ClientID:                   m.ClientID.ValueString(),
		CallbackURLs:               stringList(ctx, m.CallbackURLs, &diags),
		LogoutURLs:                 stringList(ctx, m.LogoutURLs, &diags),
		AllowedOAuthFlows:          stringList(ctx, m.AllowedOAuthFlows, &diags),
		AllowedOAuthScopes:         stringList(ctx, m.AllowedOAuthScopes, &diags),
		SupportedIdentityProviders: stringList(ctx, m.SupportedIdentityProviders, &diags),
	}
	if !m.AllowedOAuthFlowsUserPoolClient.IsNull() && !m.AllowedOAuthFlowsUserPoolClient.IsUnknown() {
		v := m.AllowedOAuthFlowsUserPoolClient.ValueBool()
		cfg.AllowedOAuthFlowsUserPoolClient = &v
	}
	if m.CustomDomain != nil && m.CustomDomain.Name.ValueString() != "" {
		cfg.CustomDomain = &manifest.CustomDomain{
			Name:           m.CustomDomain.Name.ValueString(),
			CertificateARN: m.CustomDomain.CertificateArn.ValueString(),
		}
	}
	return cfg, diags
}

func stringList(ctx context.Context, l types.List, diags *diag.Diagnostics) []string {
	if l.IsNull() || l.IsUnknown() {
		return nil
	}
	var out []string
	diags.Append(l.ElementsAs(ctx, &out, false)...)
	return out
}
