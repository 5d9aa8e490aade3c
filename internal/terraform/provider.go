package provider

import (
	"context"

	"github.com/hashicorp/terraform-plugin-framework/datasource"
	"github.com/hashicorp/terraform-plugin-framework/provider"
	"github.com/hashicorp/terraform-plugin-framework/provider/schema"
	"github.com/hashicorp/terraform-plugin-framework/resource"
	"github.com/hashicorp/terraform-plugin-framework/types"

	"github.com/mikecbrant/cognito-userpool-clients/internal/awssdk"
	"github.com/mikecbrant/cognito-userpool-clients/internal/awssdk/cognito"
	"github.com/mikecbrant/cognito-userpool-clients/internal/config"
	"github.com/mikecbrant/cognito-userpool-clients/internal/manifest"
	"github.com/mikecbrant/cognito-userpool-clients/internal/reconcile"
	"github.com/mikecbrant/cognito-userpool-clients/internal/utils/logging"
)

// Ensure implementation satisfies expected interfaces
var _ provider.Provider = (*cognitoClientsProvider)(nil)

type cognitoClientsProvider struct {
	version string
}

type providerModel struct {
	Region  types.String `tfsdk:"region"`
	Profile types.String `tfsdk:"profile"`
}

// providerData is handed to resources from Configure. Pools are built per operation so the
// Cognito service logs through that operation's tflog context.
type providerData struct {
	newPools func(logger logging.Logger) reconcile.UserPools
}

// New returns a provider factory closure with the given version string.
func New(version string) func() provider.Provider {
	return func() provider.Provider {
		return &cognitoClientsProvider{version: version}
	}
}

func (p *cognitoClientsProvider) Metadata(_ context.Context, _ provider.MetadataRequest, resp *provider.MetadataResponse) {
	resp.TypeName = "cognitoclients"
	resp.Version = p.version
}

func (p *cognitoClientsProvider) Schema(_ context.Context, _ provider.SchemaRequest, resp *provider.SchemaResponse) {
	resp.Schema = schema.Schema{
		Description: "Syncs Cognito user pool client OAuth settings and reconciles user pool custom domains.",
		Attributes: map[string]schema.Attribute{
			"region":  schema.StringAttribute{Optional: true, Description: "AWS region; defaults to AWS_REGION, then " + config.DefaultRegion + "."},
			"profile": schema.StringAttribute{Optional: true, Description: "AWS shared config profile."},
		},
	}
}

func (p *cognitoClientsProvider) Configure(ctx context.Context, req provider.ConfigureRequest, resp *provider.ConfigureResponse) {
	var m providerModel
	resp.Diagnostics.Append(req.Config.Get(ctx, &m)...)
	if resp.Diagnostics.HasError() {
		return
	}
	s := config.Load(config.Flags{Region: m.Region.ValueString(), Profile: m.Profile.ValueString()})
	s.ApplyManifest(manifest.Provider{})

	cfg, err := awssdk.LoadDefault(ctx, s.Region, s.Profile)
	if err != nil {
		resp.Diagnostics.AddError("AWS config error", err.Error())
		return
	}
	data := &providerData{
		newPools: func(logger logging.Logger) reconcile.UserPools { return cognito.NewFromConfig(cfg, logger) },
	}
	resp.ResourceData = data
}

func (p *cognitoClientsProvider) Resources(_ context.Context) []func() resource.Resource {
	return []func() resource.Resource{
		NewClientResource,
	}
}

func (p *cognitoClientsProvider) DataSources(_ context.Context) []func() datasource.DataSource {
	return nil
}

// CustomDomainBlock is the optional custom_domain block of a client.
type CustomDomainBlock struct {
	Name           types.String `tfsdk:"name"`
	CertificateArn types.String `tfsdk:"certificate_arn"`
}
