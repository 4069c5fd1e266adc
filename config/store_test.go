package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/IlliquidAsset/deepcoder/config"
	. "github.com/onsi/gomega"
	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"
)

func TestUnitStore(t *testing.T) {
	spec.Run(t, "Testing the config store", testStore, spec.Report(report.Terminal{}))
}

func testStore(t *testing.T, when spec.G, it spec.S) {
	var (
		dir     string
		subject *config.Store
	)

	it.Before(func() {
		RegisterTestingT(t)
		dir = t.TempDir()
		subject = config.NewStore()
	})

	when("Write() and Read()", func() {
		it("round-trips through a new directory with owner-only permissions", func() {
			path := filepath.Join(dir, "nested", "config.yaml")
			cfg := config.Defaults()
			cfg.Model.Platform = "togetherai"
			cfg.Model.TogetherAPIKey = "tk"
			cfg.Git = config.GitConfig{AutoStage: true}

			Expect(subject.Write(path, cfg)).To(Succeed())

			info, err := os.Stat(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(info.Mode().Perm()).To(Equal(os.FileMode(0o600)))

			got, err := subject.Read(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.File).To(Equal(path))
			got.File = ""
			Expect(got).To(Equal(cfg))
		})

		it("fills missing keys with defaults", func() {
			path := filepath.Join(dir, "partial.yaml")
			Expect(os.WriteFile(path, []byte("git:\n  auto_commit: true\n"), 0o600)).To(Succeed())

			got, err := subject.Read(path)

			Expect(err).NotTo(HaveOccurred())
			Expect(got.Model.Platform).To(Equal("deepseek"))
			Expect(got.Git.AutoCommit).To(BeTrue())
			Expect(got.Git.AutoStage).To(BeTrue())
		})
	})

	when("EnsureIgnored()", func() {
		it("appends the entry once", func() {
			gi := filepath.Join(dir, ".gitignore")
			Expect(os.WriteFile(gi, []byte("node_modules\n"), 0o644)).To(Succeed())

			changed, err := subject.EnsureIgnored(gi, ".deepcoder.yaml", "DeepCoder configuration")
			Expect(err).NotTo(HaveOccurred())
			Expect(changed).To(BeTrue())

			changed, err = subject.EnsureIgnored(gi, ".deepcoder.yaml", "DeepCoder configuration")
			Expect(err).NotTo(HaveOccurred())
			Expect(changed).To(BeFalse())

			b, _ := os.ReadFile(gi)
			Expect(string(b)).To(Equal("node_modules\n\n# DeepCoder configuration\n.deepcoder.yaml\n"))
		})

		it("leaves a missing file alone", func() {
			changed, err := subject.EnsureIgnored(filepath.Join(dir, ".gitignore"), ".env", "Environment variables")

			Expect(err).NotTo(HaveOccurred())
			Expect(changed).To(BeFalse())
			_, statErr := os.Stat(filepath.Join(dir, ".gitignore"))
			Expect(os.IsNotExist(statErr)).To(BeTrue())
		})
	})
}
