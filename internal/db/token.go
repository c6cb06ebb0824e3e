package db

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/rds/auth"
	"github.com/jackc/pgx/v5"

	"github.com/AgentBurgundy/better-shopify-app-template/internal/config"
	"github.com/AgentBurgundy/better-shopify-app-template/pkg/shopkit"
)

// AzurePostgreSQLScope is the token scope for Azure Database for PostgreSQL.
const AzurePostgreSQLScope = "https://ossrdbms-aad.database.windows.net/.default"

// tokenExpiryWarning is how close to expiry a fresh token triggers a warning.
const tokenExpiryWarning = 5 * time.Minute

// TokenProvider issues short-lived database passwords.
type TokenProvider interface {
	// Token returns a password for user connecting to host:port.
	Token(ctx context.Context, host string, port uint16, user string) (string, time.Time, error)
	String() string
}

// NewTokenConnector returns a connector that asks provider for a password
// every time the pool opens a connection. The password in url is ignored.
func NewTokenConnector(url string, provider TokenProvider, logger shopkit.Logger) Connector {
	return tokenConnector(url, provider, logger)
}

func tokenConnector(url string, provider TokenProvider, logger shopkit.Logger) *poolConnector {
	return &poolConnector{
		url:    url,
		logger: logger,
		beforeConnect: func(ctx context.Context, cc *pgx.ConnConfig) error {
			token, expiresOn, err := provider.Token(ctx, cc.Host, cc.Port, cc.User)
			if err != nil {
				return fmt.Errorf("failed to acquire %s token: %w", provider, err)
			}
			if left := time.Until(expiresOn); left < tokenExpiryWarning {
				logger.Warn("%s token expires in %v", provider, left.Round(time.Second))
			}
			cc.Password = token
			return nil
		},
	}
}

// AWSTokenProvider builds RDS IAM authentication tokens.
type AWSTokenProvider struct {
	region      string
	credentials aws.CredentialsProvider
}

// NewAWSTokenProvider loads the default AWS credential chain. An empty
// region falls back to the chain's configured region.
func NewAWSTokenProvider(ctx context.Context, region string) (*AWSTokenProvider, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("%w: AWS IAM auth requires AWS_REGION", shopkit.ErrInvalidConfig)
	}
	return &AWSTokenProvider{region: cfg.Region, credentials: cfg.Credentials}, nil
}

// Token builds a token valid for 15 minutes.
func (p *AWSTokenProvider) Token(ctx context.Context, host string, port uint16, user string) (string, time.Time, error) {
	endpoint := net.JoinHostPort(host, strconv.Itoa(int(port)))
	token, err := auth.BuildAuthToken(ctx, endpoint, p.region, user, p.credentials)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to build RDS auth token: %w", err)
	}
	return token, time.Now().Add(15 * time.Minute), nil
}

func (p *AWSTokenProvider) String() string {
	return "AWS IAM"
}

// AzureTokenProvider requests Entra ID tokens for Azure Database for PostgreSQL.
type AzureTokenProvider struct {
	credential azcore.TokenCredential
	name       string
}

// NewAzureTokenProvider uses a service principal when tenant, client and
// secret are all set, and the default Azure credential chain otherwise.
func NewAzureTokenProvider(tenantID, clientID, clientSecret string) (*AzureTokenProvider, error) {
	if tenantID != "" && clientID != "" && clientSecret != "" {
		cred, err := azidentity.NewClientSecretCredential(tenantID, clientID, clientSecret, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure service principal credential: %w", err)
		}
		return &AzureTokenProvider{credential: cred, name: "Azure service principal"}, nil
	}

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure default credential: %w", err)
	}
	return &AzureTokenProvider{credential: cred, name: "Azure"}, nil
}

// Token requests a token. The host, port and user do not affect it.
func (p *AzureTokenProvider) Token(ctx context.Context, _ string, _ uint16, _ string) (string, time.Time, error) {
	tok, err := p.credential.GetToken(ctx, policy.TokenRequestOptions{
		Scopes: []string{AzurePostgreSQLScope},
	})
	if err != nil {
		return "", time.Time{}, fmt.Errorf("azure token acquisition failed: %w", err)
	}
	return tok.Token, tok.ExpiresOn, nil
}

func (p *AzureTokenProvider) String() string {
	return p.name
}

func newAWSConnector(ctx context.Context, cfg config.DatabaseConfig, logger shopkit.Logger) (Connector, error) {
	provider, err := NewAWSTokenProvider(ctx, cfg.AWSRegion)
	if err != nil {
		return nil, err
	}
	return tokenConnector(cfg.URL, provider, logger), nil
}

func newAzureConnector(cfg config.DatabaseConfig, logger shopkit.Logger) (Connector, error) {
	provider, err := NewAzureTokenProvider(cfg.AzureTenantID, cfg.AzureClientID, cfg.AzureClientSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shopkit.ErrInvalidConfig, err)
	}
	return tokenConnector(cfg.URL, provider, logger), nil
}
