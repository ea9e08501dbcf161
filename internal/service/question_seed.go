package service

import "interview_prep_backend/internal/model"

func coding(title, description, difficulty string, points int, companies []string, link string, tc model.TestCase, starter string) model.Question {
	q := model.Question{
		Title:       title,
		Description: description,
		Category:    model.CategoryCoding,
		Difficulty:  difficulty,
		Points:      points,
		Companies:   companies,
		Link:        link,
		StarterCode: starter,
	}
	if tc.Input != "" {
		q.TestCases = []model.TestCase{tc}
	}
	return q
}

// DefaultQuestions 题库为空时写入的初始题目
func DefaultQuestions() []model.Question {
	return []model.Question{
		coding("Two Sum",
			"Given an array of integers nums and an integer target, return indices of the two numbers such that they add up to target.",
			"Easy", 10, []string{"Google", "Amazon", "Facebook"}, "https://leetcode.com/problems/two-sum/",
			model.TestCase{Input: "[2,7,11,15], 9", Output: "[0,1]", Explanation: "2 + 7 = 9"},
			"function twoSum(nums, target) {\n  // Write your code here\n}"),
		coding("Contains Duplicate",
			"Given an integer array nums, return true if any value appears at least twice in the array, and return false if every element is distinct.",
			"Easy", 10, []string{"Microsoft", "Apple"}, "https://leetcode.com/problems/contains-duplicate/",
			model.TestCase{Input: "[1,2,3,1]", Output: "true", Explanation: "1 appears twice"},
			"function containsDuplicate(nums) {\n  // Write your code here\n}"),
		coding("Group Anagrams",
			"Given an array of strings strs, group the anagrams together. You can return the answer in any order.",
			"Medium", 20, []string{"Amazon", "Affirm"}, "https://leetcode.com/problems/group-anagrams/",
			model.TestCase{Input: "['eat','tea','tan','ate','nat','bat']", Output: "[['bat'],['nat','tan'],['ate','eat','tea']]"},
			"function groupAnagrams(strs) {\n  // Write your code here\n}"),
		coding("Top K Frequent Elements",
			"Given an integer array nums and an integer k, return the k most frequent elements. You may return the answer in any order.",
			"Medium", 20, []string{"Facebook", "Amazon"}, "https://leetcode.com/problems/top-k-frequent-elements/",
			model.TestCase{Input: "[1,1,1,2,2,3], 2", Output: "[1,2]"},
			"function topKFrequent(nums, k) {\n  // Write your code here\n}"),
		coding("Product of Array Except Self",
			"Given an integer array nums, return an array answer such that answer[i] is equal to the product of all the elements of nums except nums[i].",
			"Medium", 25, []string{"Apple", "Asana"}, "https://leetcode.com/problems/product-of-array-except-self/",
			model.TestCase{Input: "[1,2,3,4]", Output: "[24,12,8,6]"},
			"function productExceptSelf(nums) {\n  // Write your code here\n}"),
		coding("Valid Palindrome",
			"A phrase is a palindrome if, after converting all uppercase letters into lowercase letters and removing all non-alphanumeric characters, it reads the same forward and backward.",
			"Easy", 10, []string{"Facebook", "Microsoft"}, "https://leetcode.com/problems/valid-palindrome/",
			model.TestCase{Input: "'A man, a plan, a canal: Panama'", Output: "true"},
			"function isPalindrome(s) {\n  // Write your code here\n}"),
		coding("3Sum",
			"Given an integer array nums, return all the triplets [nums[i], nums[j], nums[k]] such that i != j, i != k, and j != k, and nums[i] + nums[j] + nums[k] == 0.",
			"Medium", 30, []string{"Amazon", "Facebook", "Google"}, "https://leetcode.com/problems/3sum/",
			model.TestCase{Input: "[-1,0,1,2,-1,-4]", Output: "[[-1,-1,2],[-1,0,1]]"},
			"function threeSum(nums) {\n  // Write your code here\n}"),
		coding("Best Time to Buy and Sell Stock",
			"You are given an array prices where prices[i] is the price of a given stock on the ith day. You want to maximize your profit by choosing a single day to buy one stock and choosing a different day in the future to sell that stock.",
			"Easy", 10, []string{"Amazon", "Microsoft", "Google"}, "https://leetcode.com/problems/best-time-to-buy-and-sell-stock/",
			model.TestCase{Input: "[7,1,5,3,6,4]", Output: "5", Explanation: "Buy on day 2 (price = 1) and sell on day 5 (price = 6), profit = 6-1 = 5."},
			"function maxProfit(prices) {\n  // Write your code here\n}"),
		coding("Valid Parentheses",
			"Given a string s containing just the characters '(', ')', '{', '}', '[' and ']', determine if the input string is valid.",
			"Easy", 15, []string{"Amazon", "Microsoft", "Facebook"}, "https://leetcode.com/problems/valid-parentheses/",
			model.TestCase{Input: "'()[]{}'", Output: "true"},
			"function isValid(s) {\n  // Write your code here\n}"),
		coding("Search in Rotated Sorted Array",
			"Given the array nums after the possible rotation and an integer target, return the index of target if it is in nums, or -1 if it is not in nums.",
			"Medium", 30, []string{"Facebook", "Microsoft", "Amazon"}, "https://leetcode.com/problems/search-in-rotated-sorted-array/",
			model.TestCase{Input: "[4,5,6,7,0,1,2], 0", Output: "4"},
			"function search(nums, target) {\n  // Write your code here\n}"),
		{
			Title:       "Logical Sequence",
			Description: "Find the missing number in the series: 2, 6, 12, 20, 30, ?",
			Category:    model.CategoryAptitude,
			Difficulty:  "Easy",
			Points:      5,
			Companies:   []string{"TCS", "Infosys"},
			Options: []model.Option{
				{Text: "40"}, {Text: "42", IsCorrect: true}, {Text: "44"}, {Text: "38"},
			},
		},
		{
			Title:       "Probability Basics",
			Description: "What is the probability of getting a sum of 9 when two dice are thrown simultaneously?",
			Category:    model.CategoryAptitude,
			Difficulty:  "Medium",
			Points:      10,
			Companies:   []string{"Wipro", "Accenture"},
			Options: []model.Option{
				{Text: "1/6"}, {Text: "1/8"}, {Text: "1/9", IsCorrect: true}, {Text: "1/12"},
			},
		},
	}
}
