package registry

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	ecrTypes "github.com/aws/aws-sdk-go-v2/service/ecr/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/kevinfinalboss/corsair/internal/logger"
	"github.com/kevinfinalboss/corsair/pkg/types"
)

// ecrAPI é o recorte do cliente ECR que o registry usa.
type ecrAPI interface {
	GetAuthorizationToken(ctx context.Context, params *ecr.GetAuthorizationTokenInput, optFns ...func(*ecr.Options)) (*ecr.GetAuthorizationTokenOutput, error)
	BatchGetImage(ctx context.Context, params *ecr.BatchGetImageInput, optFns ...func(*ecr.Options)) (*ecr.BatchGetImageOutput, error)
	DescribeRepositories(ctx context.Context, params *ecr.DescribeRepositoriesInput, optFns ...func(*ecr.Options)) (*ecr.DescribeRepositoriesOutput, error)
	CreateRepository(ctx context.Context, params *ecr.CreateRepositoryInput, optFns ...func(*ecr.Options)) (*ecr.CreateRepositoryOutput, error)
}

// ECRRegistry resolve a credencial de destino via GetAuthorizationToken e
// cria repositórios sob demanda antes do push, que o ECR exige.
type ECRRegistry struct {
	region    string
	accountID string
	profiles  []string
	accessKey string
	secretKey string
	logger    *logger.Logger
	awsConfig aws.Config
	ecrClient ecrAPI

	mu         sync.Mutex
	credential types.Credential
	expiresAt  time.Time
}

func NewECRRegistry(cfg *types.DestinationConfig, log *logger.Logger) (*ECRRegistry, error) {
	if cfg.Region == "" {
		return nil, fmt.Errorf("registry ECR sem region configurada")
	}

	registry := &ECRRegistry{
		region:    cfg.Region,
		accountID: cfg.AccountID,
		profiles:  cfg.Profiles,
		accessKey: cfg.AccessKey,
		secretKey: cfg.SecretKey,
		logger:    log,
	}

	if err := registry.initAWSConfig(context.Background()); err != nil {
		return nil, fmt.Errorf("falha ao inicializar configuração AWS: %w", err)
	}

	return registry, nil
}

func (r *ECRRegistry) initAWSConfig(ctx context.Context) error {
	var cfg aws.Config
	var err error

	switch {
	case r.accessKey != "" && r.secretKey != "":
		cfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(r.region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				r.accessKey,
				r.secretKey,
				"",
			)),
		)
	case len(r.profiles) > 0:
		for _, profile := range r.profiles {
			cfg, err = awsconfig.LoadDefaultConfig(ctx,
				awsconfig.WithRegion(r.region),
				awsconfig.WithSharedConfigProfile(profile),
			)
			if err == nil {
				break
			}
			r.logger.Warn("operation_failed").
				Str("profile", profile).
				Err(err).
				Send()
		}
		if err != nil {
			return fmt.Errorf("falha em todos os profiles AWS: %w", err)
		}
	default:
		cfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(r.region),
		)
	}

	if err != nil {
		return fmt.Errorf("falha ao carregar configuração AWS: %w", err)
	}

	r.awsConfig = cfg
	r.ecrClient = ecr.NewFromConfig(cfg)

	if r.accountID == "" {
		if err := r.discoverAccountID(ctx); err != nil {
			return fmt.Errorf("falha ao descobrir Account ID: %w", err)
		}
	}

	return nil
}

func (r *ECRRegistry) discoverAccountID(ctx context.Context) error {
	stsClient := sts.NewFromConfig(r.awsConfig)

	result, err := stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return err
	}

	r.accountID = *result.Account
	r.logger.Debug("operation_completed").
		Str("account_id", r.accountID).
		Send()

	return nil
}

func (r *ECRRegistry) GetName() string {
	return fmt.Sprintf("ecr-%s", r.region)
}

func (r *ECRRegistry) GetType() string {
	return "ecr"
}

func (r *ECRRegistry) Endpoint() string {
	return fmt.Sprintf("%s.dkr.ecr.%s.amazonaws.com", r.accountID, r.region)
}

// Credentials troca um token de autorização ECR por usuário+senha. O token
// vale 12 horas; é reutilizado até perto de expirar.
func (r *ECRRegistry) Credentials(ctx context.Context) (types.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.credential.Empty() && time.Now().Before(r.expiresAt) {
		return r.credential, nil
	}

	result, err := r.ecrClient.GetAuthorizationToken(ctx, &ecr.GetAuthorizationTokenInput{})
	if err != nil {
		r.logger.Error("ecr_auth_failed").Err(err).Send()
		return types.Credential{}, fmt.Errorf("falha na autenticação ECR: %w", err)
	}

	if len(result.AuthorizationData) == 0 {
		return types.Credential{}, fmt.Errorf("nenhum token de autorização retornado pelo ECR")
	}

	authData := result.AuthorizationData[0]
	token, err := base64.StdEncoding.DecodeString(*authData.AuthorizationToken)
	if err != nil {
		return types.Credential{}, fmt.Errorf("falha ao decodificar token ECR: %w", err)
	}

	parts := strings.SplitN(string(token), ":", 2)
	if len(parts) != 2 {
		return types.Credential{}, fmt.Errorf("formato de token ECR inválido")
	}

	r.credential = types.Credential{Username: parts[0], Secret: parts[1]}
	r.expiresAt = time.Now().Add(11 * time.Hour)
	if authData.ExpiresAt != nil {
		r.expiresAt = authData.ExpiresAt.Add(-30 * time.Minute)
	}

	return r.credential, nil
}

func (r *ECRRegistry) IsHealthy(ctx context.Context) error {
	_, err := r.ecrClient.GetAuthorizationToken(ctx, &ecr.GetAuthorizationTokenInput{})
	if err != nil {
		return fmt.Errorf("falha no health check ECR: %w", err)
	}
	return nil
}

func (r *ECRRegistry) HasManifest(ctx context.Context, repositoryPath, tag string) Presence {
	result, err := r.ecrClient.BatchGetImage(ctx, &ecr.BatchGetImageInput{
		RepositoryName: aws.String(repositoryPath),
		ImageIds: []ecrTypes.ImageIdentifier{
			{ImageTag: aws.String(tag)},
		},
	})

	var presence Presence
	switch {
	case err == nil:
		presence = presenceFromBatch(result)
	case strings.Contains(err.Error(), "RepositoryNotFound"),
		strings.Contains(err.Error(), "does not exist"),
		strings.Contains(err.Error(), "not found"):
		presence = PresenceAbsent
	default:
		presence = PresenceUnknown
	}

	r.logger.Debug("probe_result").
		Str("repository", repositoryPath).
		Str("tag", tag).
		Str("presence", presence.String()).
		Send()

	return presence
}

// presenceFromBatch interpreta a resposta de BatchGetImage. Tag ausente num
// repositório existente não vira erro Go: a API responde 200 com Images vazio
// e a causa em Failures.
func presenceFromBatch(result *ecr.BatchGetImageOutput) Presence {
	if len(result.Images) > 0 {
		return PresenceExists
	}

	for _, failure := range result.Failures {
		switch failure.FailureCode {
		case ecrTypes.ImageFailureCodeImageNotFound,
			ecrTypes.ImageFailureCodeImageTagDoesNotMatchDigest:
			return PresenceAbsent
		}
	}

	if len(result.Failures) == 0 {
		return PresenceAbsent
	}
	return PresenceUnknown
}

func (r *ECRRegistry) PreparePush(ctx context.Context, repositoryPath string) error {
	r.logger.Debug("ecr_repository_check").
		Str("repository", repositoryPath).
		Send()

	_, err := r.ecrClient.DescribeRepositories(ctx, &ecr.DescribeRepositoriesInput{
		RepositoryNames: []string{repositoryPath},
	})
	if err == nil {
		return nil
	}
	if !strings.Contains(err.Error(), "RepositoryNotFound") {
		return err
	}

	_, err = r.ecrClient.CreateRepository(ctx, &ecr.CreateRepositoryInput{
		RepositoryName: aws.String(repositoryPath),
	})
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			return nil
		}
		return fmt.Errorf("falha ao criar repositório ECR %s: %w", repositoryPath, err)
	}

	r.logger.Info("ecr_repository_created").
		Str("repository", repositoryPath).
		Send()

	return nil
}
