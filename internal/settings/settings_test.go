package settings_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cyberjinn/internal/settings"
	"github.com/san-kum/cyberjinn/internal/theme"
)

var _ = Describe("Settings", func() {
	var s *settings.Settings

	BeforeEach(func() {
		s = settings.New(settings.Options{Theme: "green", Rain: true, Particles: true})
	})

	Describe("theme", func() {
		It("exposes the primary color of the active theme", func() {
			Expect(s.Primary()).To(Equal(theme.Green.PrimaryColor()))
		})

		It("changes the primary color on switch", func() {
			Expect(s.SetTheme("red")).To(Succeed())
			Expect(s.Primary()).To(Equal(theme.Red.PrimaryColor()))
		})

		It("rejects unknown themes without changing state", func() {
			Expect(s.SetTheme("teal")).To(MatchError(theme.ErrUnknownTheme))
			Expect(s.Theme().Name).To(Equal("green"))
		})

		It("cycles through every theme", func() {
			Expect(s.CycleTheme().Name).To(Equal("red"))
			Expect(s.CycleTheme().Name).To(Equal("purple"))
			Expect(s.CycleTheme().Name).To(Equal("green"))
		})

		It("falls back to the default theme for unknown names", func() {
			Expect(settings.New(settings.Options{Theme: "nope"}).Theme().Name).To(Equal(theme.Default.Name))
		})
	})

	Describe("rain toggle", func() {
		It("drives the effective flag", func() {
			s.SetRainToggle(false)
			Expect(s.RainEnabled()).To(BeFalse())
			Expect(s.RainToggle()).To(BeFalse())
			s.SetRainToggle(true)
			Expect(s.RainEnabled()).To(BeTrue())
		})
	})

	Describe("backgrounding", func() {
		It("suspends rain when hidden", func() {
			s.SetHidden(true)
			Expect(s.Hidden()).To(BeTrue())
			Expect(s.RainEnabled()).To(BeFalse())
			Expect(s.RainToggle()).To(BeTrue())
		})

		It("resumes rain when shown while the toggle is on", func() {
			s.SetHidden(true)
			s.SetHidden(false)
			Expect(s.RainEnabled()).To(BeTrue())
		})

		It("stays suspended when the user turned rain off meanwhile", func() {
			s.SetHidden(true)
			s.SetRainToggle(false)
			s.SetHidden(false)
			Expect(s.RainEnabled()).To(BeFalse())
		})

		It("keeps rain suspended when the user turns it on while hidden", func() {
			off := settings.New(settings.Options{Rain: false})
			off.SetHidden(true)
			off.SetRainToggle(true)
			Expect(off.RainToggle()).To(BeTrue())
			Expect(off.RainEnabled()).To(BeFalse())
			off.SetHidden(false)
			Expect(off.RainEnabled()).To(BeTrue())
		})

		It("does not enable rain the user never enabled", func() {
			off := settings.New(settings.Options{Rain: false})
			off.SetHidden(true)
			off.SetHidden(false)
			Expect(off.RainEnabled()).To(BeFalse())
		})

		It("leaves particles alone", func() {
			s.SetHidden(true)
			Expect(s.ParticlesEnabled()).To(BeTrue())
		})
	})
})
