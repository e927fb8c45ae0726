package config_test

import (
	"io/fs"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kpauljoseph/hashcards/internal/config"
)

var _ = Describe("Config", func() {
	var dir string

	write := func(content string) string {
		path := filepath.Join(dir, config.DefaultFileName)
		Expect(os.WriteFile(path, []byte(content), 0644)).To(Succeed())
		return path
	}

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("should read every key", func() {
		path := write(`
collection_dir: /notes
database: /var/lib/cards.db
log_level: debug
drill:
  card_limit: 30
  new_card_limit: 5
  deck: spanish
  bury_siblings: false
  shuffle: false
  answer_controls: binary
`)
		cfg, err := config.Load(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.CollectionDir).To(Equal("/notes"))
		Expect(cfg.DatabasePath()).To(Equal("/var/lib/cards.db"))
		Expect(cfg.LogLevel).To(Equal("debug"))
		Expect(cfg.Drill.CardLimit).To(HaveValue(Equal(30)))
		Expect(cfg.Drill.NewCardLimit).To(HaveValue(Equal(5)))
		Expect(cfg.Drill.Deck).To(Equal("spanish"))
		Expect(cfg.Drill.BurySiblings).To(BeFalse())
		Expect(cfg.Drill.Shuffle).To(BeFalse())
		Expect(cfg.Drill.AnswerControls).To(Equal("binary"))
	})

	It("should fill in defaults for missing keys", func() {
		cfg, err := config.Load(write("drill:\n  deck: french\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.CollectionDir).To(Equal("."))
		Expect(cfg.Database).To(Equal(config.DefaultDatabase))
		Expect(cfg.LogLevel).To(Equal("info"))
		Expect(cfg.Drill.CardLimit).To(BeNil())
		Expect(cfg.Drill.NewCardLimit).To(BeNil())
		Expect(cfg.Drill.BurySiblings).To(BeTrue())
		Expect(cfg.Drill.Shuffle).To(BeTrue())
		Expect(cfg.Drill.AnswerControls).To(Equal("full"))
		Expect(cfg.Drill.Deck).To(Equal("french"))
	})

	It("should resolve a relative database against the collection", func() {
		cfg, err := config.Load(write("collection_dir: /notes\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.DatabasePath()).To(Equal(filepath.Join("/notes", config.DefaultDatabase)))
	})

	DescribeTable("should reject invalid values",
		func(content string) {
			_, err := config.Load(write(content))
			Expect(err).To(HaveOccurred())
		},
		Entry("malformed yaml", "drill: [unterminated"),
		Entry("negative card limit", "drill:\n  card_limit: -1\n"),
		Entry("negative new card limit", "drill:\n  new_card_limit: -3\n"),
		Entry("unknown controls", "drill:\n  answer_controls: ternary\n"),
	)

	It("should fail on a missing file", func() {
		_, err := config.Load(filepath.Join(dir, "absent.yaml"))
		Expect(err).To(MatchError(fs.ErrNotExist))
	})

	It("should fall back to defaults when the file is missing", func() {
		cfg, err := config.LoadOrDefault(filepath.Join(dir, "absent.yaml"))
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg).To(Equal(config.Default()))
	})

	It("should not hide parse errors behind defaults", func() {
		_, err := config.LoadOrDefault(write("log_level: [x"))
		Expect(err).To(HaveOccurred())
	})
})
