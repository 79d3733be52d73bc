package report_test

import (
	"shopfloor/domain"
	"shopfloor/domain/report"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("ClassifySemaphore", func() {
	var settings domain.ReportSettings

	BeforeEach(func() {
		settings = domain.ReportSettings{RedBelow: 0.8, GreenFrom: 1.0}
	})

	Context("with the default 0.8 and 1.0 thresholds", func() {
		It("should report red below the lower threshold", func() {
			Expect(report.ClassifySemaphore(0, settings)).To(Equal(report.SemaphoreRed))
			Expect(report.ClassifySemaphore(0.5, settings)).To(Equal(report.SemaphoreRed))
			Expect(report.ClassifySemaphore(0.7999, settings)).To(Equal(report.SemaphoreRed))
		})

		It("should report yellow between the thresholds, lower bound inclusive", func() {
			Expect(report.ClassifySemaphore(0.8, settings)).To(Equal(report.SemaphoreYellow))
			Expect(report.ClassifySemaphore(0.9, settings)).To(Equal(report.SemaphoreYellow))
			Expect(report.ClassifySemaphore(0.9999, settings)).To(Equal(report.SemaphoreYellow))
		})

		It("should report green from the upper threshold on, inclusive", func() {
			Expect(report.ClassifySemaphore(1.0, settings)).To(Equal(report.SemaphoreGreen))
			Expect(report.ClassifySemaphore(1.5, settings)).To(Equal(report.SemaphoreGreen))
		})
	})

	Context("with coinciding thresholds", func() {
		It("should leave no room for yellow", func() {
			settings = domain.ReportSettings{RedBelow: 1.0, GreenFrom: 1.0}
			Expect(report.ClassifySemaphore(0.9999, settings)).To(Equal(report.SemaphoreRed))
			Expect(report.ClassifySemaphore(1.0, settings)).To(Equal(report.SemaphoreGreen))
		})
	})
})
