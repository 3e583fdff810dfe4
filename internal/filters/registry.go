package filters

// Funcs returns every filter keyed by the name templates use for it.
func (s *Set) Funcs() map[string]any {
	return map[string]any{
		"humanizeDate":         s.HumanizeDate,
		"humanizeTime":         s.HumanizeTime,
		"humanizeTimestamp":    s.HumanizeTimestamp,
		"timeZone":             s.TimeZone,
		"formatDate":           s.FormatDate,
		"dateFromUnix":         s.DateFromUnix,
		"unixFromDate":         s.UnixFromDate,
		"currentTimeInSeconds": s.CurrentTimeInSeconds,
		"timezoneAbbrev":       s.TimezoneAbbrev,
		"isPastDate":           s.IsPastDate,
		"isLaterThan":          s.IsLaterThan,
		"formatSeconds":        s.FormatSeconds,
		"eventSorter":          s.EventSorter,

		"toTitleCase":       s.ToTitleCase,
		"startCase":         s.StartCase,
		"hashReference":     s.HashReference,
		"removeUnderscores": s.RemoveUnderscores,
		"fileSize":          s.FileSize,
		"fileExt":           s.FileExt,
		"breakIntoSingles":  s.BreakIntoSingles,
		"breakTerms":        s.BreakTerms,
		"benefitTerms":      s.BenefitTerms,
		"numToWord":         s.NumToWord,
		"modulo":            s.Modulo,
		"genericModulo":     s.GenericModulo,
		"accessibleNumber":  s.AccessibleNumber,
		"outputLinks":       s.OutputLinks,
		"replace":           s.Replace,
		"jsonToObj":         s.JSONToObj,
		"detectLang":        s.DetectLang,
		"getPagerPage":      s.GetPagerPage,

		"drupalToVaPath":             s.DrupalToVaPath,
		"videoThumbnail":             s.VideoThumbnail,
		"createEmbedYouTubeVideoURL": s.CreateEmbedYouTubeVideoURL,

		"facilityIds":                       s.FacilityIds,
		"widgetFacilitiesList":              s.WidgetFacilitiesList,
		"widgetFacilityDetail":              s.WidgetFacilityDetail,
		"sortMainFacility":                  s.SortMainFacility,
		"regionBasePath":                    s.RegionBasePath,
		"healthServiceApiId":                s.HealthServiceApiId,
		"featureFieldRegionalHealthService": s.FeatureFieldRegionalHealthService,
		"phoneNumberArrayToObject":          s.PhoneNumberArrayToObject,

		"sliceArrayFromStart":         s.SliceArrayFromStart,
		"sortObjectsBy":               s.SortObjectsBy,
		"getValueFromObjPath":         s.GetValueFromObjPath,
		"getValueFromArrayObjPath":    s.GetValueFromArrayObjPath,
		"sortEntityMetatags":          s.SortEntityMetatags,
		"formatVaParagraphs":          s.FormatVaParagraphs,
		"getTagsList":                 s.GetTagsList,
		"deriveCLPTotalSections":      s.DeriveCLPTotalSections,
		"featureSingleValueFieldLink": s.FeatureSingleValueFieldLink,

		"isPage":        s.IsPage,
		"isRootPage":    s.IsRootPage,
		"isAboutItem":   s.IsAboutItem,
		"isPitt":        s.IsPitt,
		"isChildPageOf": s.IsChildPageOf,

		"findCurrentPathDepth":          s.FindCurrentPathDepth,
		"findCurrentPathDepthRecursive": s.FindCurrentPathDepthRecursive,
		"deriveLastBreadcrumbFromPath":  s.DeriveLastBreadcrumbFromPath,
		"deriveLcBreadcrumbs":           s.DeriveLcBreadcrumbs,

		"streetAddress":        s.StreetAddress,
		"militaryCityStateZIP": s.MilitaryCityStateZIP,
	}
}
