package histogram_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestHistogram(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Histogram Suite")
}
