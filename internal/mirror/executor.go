package mirror

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/kevinfinalboss/corsair/internal/logger"
	"github.com/kevinfinalboss/corsair/internal/registry"
	"github.com/kevinfinalboss/corsair/pkg/types"
)

const redactedSecret = "***"

// CopyRequest descreve uma transferência origem→destino totalmente resolvida.
type CopyRequest struct {
	Source       types.ImageReference
	Target       types.Destination
	Architecture string
	SourceCred   types.Credential
	DestCred     types.Credential
}

// Copier executa a transferência entre registries. Implementações não fazem
// retry; a política de repetição pertence ao orquestrador.
type Copier interface {
	Name() string
	Copy(ctx context.Context, req CopyRequest) error
	// Plan devolve os comandos que Copy executaria, com segredos redigidos.
	Plan(req CopyRequest) []string
	// Inspect consulta o manifesto de uma referência via a própria tool,
	// como último estágio da cascata de existência.
	Inspect(ctx context.Context, ref string, cred types.Credential) registry.Presence
}

// NewCopier escolhe o backend disponível no ambiente: skopeo quando presente
// (cópia direta registry-a-registry, sem armazenamento local), senão docker
// (pull/tag/push).
func NewCopier(log *logger.Logger) (Copier, error) {
	if _, err := exec.LookPath("skopeo"); err == nil {
		log.Debug("copier_selected").Str("backend", "skopeo").Send()
		return NewSkopeoCopier(log), nil
	}
	if _, err := exec.LookPath("docker"); err == nil {
		log.Debug("copier_selected").Str("backend", "docker").Send()
		return NewDockerCopier(log), nil
	}
	return nil, fmt.Errorf("nenhum backend de cópia disponível: instale skopeo ou docker")
}

// SkopeoCopier transfere manifesto e camadas direto entre registries,
// filtrado para a arquitetura alvo, sem materializar nada em disco.
type SkopeoCopier struct {
	logger *logger.Logger
}

func NewSkopeoCopier(log *logger.Logger) *SkopeoCopier {
	return &SkopeoCopier{logger: log}
}

func (s *SkopeoCopier) Name() string {
	return "skopeo"
}

func (s *SkopeoCopier) copyArgs(req CopyRequest, redact bool) []string {
	args := []string{"copy", "--override-arch", req.Architecture, "--override-os", "linux"}

	if !req.SourceCred.Empty() {
		args = append(args, "--src-creds", formatCreds(req.SourceCred, redact))
	}
	if req.DestCred.Username != "" {
		args = append(args, "--dest-creds", formatCreds(req.DestCred, redact))
	} else if req.DestCred.Secret != "" {
		args = append(args, "--dest-registry-token", secret(req.DestCred.Secret, redact))
	}

	return append(args,
		"docker://"+req.Source.String(),
		"docker://"+req.Target.String(),
	)
}

func (s *SkopeoCopier) Copy(ctx context.Context, req CopyRequest) error {
	cmd := exec.CommandContext(ctx, "skopeo", s.copyArgs(req, false)...)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("skopeo copy falhou: %w: %s", err, strings.TrimSpace(string(output)))
	}

	return nil
}

func (s *SkopeoCopier) Plan(req CopyRequest) []string {
	return []string{"skopeo " + strings.Join(s.copyArgs(req, true), " ")}
}

func (s *SkopeoCopier) Inspect(ctx context.Context, ref string, cred types.Credential) registry.Presence {
	args := []string{"inspect", "--raw"}
	if cred.Username != "" {
		args = append(args, "--creds", formatCreds(cred, false))
	} else if cred.Secret != "" {
		args = append(args, "--registry-token", cred.Secret)
	}
	args = append(args, "docker://"+ref)

	cmd := exec.CommandContext(ctx, "skopeo", args...)
	output, err := cmd.CombinedOutput()
	if err == nil {
		return registry.PresenceExists
	}
	if manifestMissing(string(output)) {
		return registry.PresenceAbsent
	}
	return registry.PresenceUnknown
}

// DockerCopier é o fallback quando não há skopeo: pull filtrado para a
// arquitetura, re-tag, push e limpeza local de melhor esforço.
type DockerCopier struct {
	logger *logger.Logger
}

func NewDockerCopier(log *logger.Logger) *DockerCopier {
	return &DockerCopier{logger: log}
}

func (d *DockerCopier) Name() string {
	return "docker"
}

func (d *DockerCopier) Copy(ctx context.Context, req CopyRequest) error {
	source := req.Source.String()
	target := req.Target.String()

	if !req.SourceCred.Empty() {
		if err := d.login(ctx, req.Source.Platform, req.SourceCred); err != nil {
			return err
		}
	}
	if !req.DestCred.Empty() {
		if err := d.login(ctx, req.Target.Registry, req.DestCred); err != nil {
			return err
		}
	}

	pull := exec.CommandContext(ctx, "docker", "pull", "--platform", "linux/"+req.Architecture, source)
	if output, err := pull.CombinedOutput(); err != nil {
		return fmt.Errorf("falha ao fazer pull da imagem %s: %w: %s", source, err, strings.TrimSpace(string(output)))
	}

	tag := exec.CommandContext(ctx, "docker", "tag", source, target)
	if output, err := tag.CombinedOutput(); err != nil {
		return fmt.Errorf("falha ao fazer tag da imagem: %w: %s", err, strings.TrimSpace(string(output)))
	}

	push := exec.CommandContext(ctx, "docker", "push", target)
	if output, err := push.CombinedOutput(); err != nil {
		return fmt.Errorf("falha ao fazer push da imagem %s: %w: %s", target, err, strings.TrimSpace(string(output)))
	}

	// Falha de limpeza não mascara uma cópia bem sucedida.
	d.cleanup(ctx, source)
	d.cleanup(ctx, target)

	return nil
}

func (d *DockerCopier) login(ctx context.Context, host string, cred types.Credential) error {
	username := cred.Username
	if username == "" {
		username = "oauth2accesstoken"
	}

	cmd := exec.CommandContext(ctx, "docker", "login", host, "-u", username, "--password-stdin")
	cmd.Stdin = strings.NewReader(cred.Secret)

	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("falha no login do registry %s: %w: %s", host, err, strings.TrimSpace(string(output)))
	}
	return nil
}

func (d *DockerCopier) cleanup(ctx context.Context, image string) {
	cmd := exec.CommandContext(ctx, "docker", "rmi", image)
	if output, err := cmd.CombinedOutput(); err != nil {
		if strings.Contains(string(output), "No such image") {
			return
		}
		d.logger.Warn("local_cleanup_failed").
			Str("image", image).
			Str("output", strings.TrimSpace(string(output))).
			Err(err).
			Send()
		return
	}
	d.logger.Debug("local_cleanup_done").
		Str("image", image).
		Send()
}

func (d *DockerCopier) Plan(req CopyRequest) []string {
	source := req.Source.String()
	target := req.Target.String()

	var plan []string
	if !req.SourceCred.Empty() {
		plan = append(plan, fmt.Sprintf("docker login %s -u %s --password-stdin", req.Source.Platform, req.SourceCred.Username))
	}
	if !req.DestCred.Empty() {
		username := req.DestCred.Username
		if username == "" {
			username = "oauth2accesstoken"
		}
		plan = append(plan, fmt.Sprintf("docker login %s -u %s --password-stdin", req.Target.Registry, username))
	}
	return append(plan,
		fmt.Sprintf("docker pull --platform linux/%s %s", req.Architecture, source),
		fmt.Sprintf("docker tag %s %s", source, target),
		fmt.Sprintf("docker push %s", target),
		fmt.Sprintf("docker rmi %s %s", source, target),
	)
}

func (d *DockerCopier) Inspect(ctx context.Context, ref string, cred types.Credential) registry.Presence {
	cmd := exec.CommandContext(ctx, "docker", "manifest", "inspect", ref)
	output, err := cmd.CombinedOutput()
	if err == nil {
		return registry.PresenceExists
	}
	if manifestMissing(string(output)) {
		return registry.PresenceAbsent
	}
	return registry.PresenceUnknown
}

func manifestMissing(output string) bool {
	lower := strings.ToLower(output)
	for _, marker := range []string{
		"manifest unknown",
		"no such manifest",
		"name unknown",
		"not found",
	} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func formatCreds(cred types.Credential, redact bool) string {
	return cred.Username + ":" + secret(cred.Secret, redact)
}

func secret(value string, redact bool) string {
	if redact {
		return redactedSecret
	}
	return value
}
