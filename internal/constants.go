/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

const (
	UserAgent          = "boylstonchessclub-swiss/0.3.0 (+https://github.com/mikeb26/boylstonchessclub-swiss)"
	BccUSCFAffiliateID = "A5000408"
	WebCacheBucket     = "bopmatic-boylstonchessclub-tdbot-prod-webcache"
	DefaultDBPath      = "swisstd.db"
	DefaultConfigPath  = "swisstd.yaml"
)
