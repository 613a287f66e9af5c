// Package dns checks availability for the optional custom domain a
// project can claim.
package dns

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/route53domains"
	rdTypes "github.com/aws/aws-sdk-go-v2/service/route53domains/types"
)

type DomainChecker struct {
	client *route53domains.Client
}

func NewDomainChecker(awsCfg aws.Config) *DomainChecker {
	// route53domains only exists in us-east-1
	cfg := awsCfg
	cfg.Region = "us-east-1"
	return &DomainChecker{client: route53domains.NewFromConfig(cfg)}
}

func (d *DomainChecker) CheckAvailability(ctx context.Context, domain string) (bool, error) {
	out, err := d.client.CheckDomainAvailability(ctx, &route53domains.CheckDomainAvailabilityInput{
		DomainName: aws.String(domain),
	})
	if err != nil {
		return false, err
	}
	return out.Availability == rdTypes.DomainAvailabilityAvailable, nil
}
